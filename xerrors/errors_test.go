package xerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	type args struct {
		format string
	}
	tests := []struct {
		name string
		args args
	}{
		{
			name: "with stack",
			args: args{
				format: "add some msg %d",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Errorf(tt.args.format, 111)
			t.Logf("err: %+v", err)
			t.Logf("err: %s", err)
		})
	}
}

func TestWrapf(t *testing.T) {
	type args struct {
		err error
	}
	tests := []struct {
		name string
		args args
	}{
		{
			name: "with stack",
			args: args{
				err: Errorf("some error %d", 111),
			},
		},
		{
			name: "fmt.Errorf",
			args: args{
				err: Wrapf(fmt.Errorf("fmt.Errorf"), "wrapf"),
			},
		},
		{
			name: "Errorf",
			args: args{
				err: Wrapf(Wrapf(Errorf("Errorf"), "Wrapf"), "wrapf"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrapf(tt.args.err, "add some msg %d", 111)
			t.Logf("err: %+v", err)
			t.Logf("err: %s", err)
		})
	}
}

func TestCode(t *testing.T) {
	type args struct {
		err error
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "nil",
			args: args{err: nil},
			want: 0,
		},
		{
			name: "plain error",
			args: args{err: fmt.Errorf("plain")},
			want: CodeUnknown,
		},
		{
			name: "new",
			args: args{err: New(CodeDecodeSyntax)},
			want: CodeDecodeSyntax,
		},
		{
			name: "with code",
			args: args{err: WithCode(fmt.Errorf("bad document"), CodeDecodeSyntax)},
			want: CodeDecodeSyntax,
		},
		{
			name: "with codef",
			args: args{err: WithCodef(fmt.Errorf("bad value"), CodeEncodeType, "encode value of key %q", "k")},
			want: CodeEncodeType,
		},
		{
			name: "wrapped keeps code",
			args: args{err: Wrapf(WithCode(fmt.Errorf("root"), CodeDecodeRootKind), "decode document")},
			want: CodeDecodeRootKind,
		},
		{
			name: "outer code wins",
			args: args{err: WithCode(New(CodeDecodeSyntax), CodeDecodeRootKind)},
			want: CodeDecodeRootKind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.args.err))
			if tt.args.err != nil {
				assert.True(t, Is(tt.args.err, tt.want))
			}
		})
	}
}

func TestNewKV(t *testing.T) {
	err := NewKV(CodeEncodeKeyKind, "container key is not a string", KeyKey, 42)
	assert.True(t, Is(err, CodeEncodeKeyKind))
	assert.Contains(t, err.Error(), "|Key: 42")
	assert.Contains(t, err.Error(), "|Reason: container key is not a string")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil))
	assert.NoError(t, Wrapf(nil, "msg"))
	assert.NoError(t, WrapKV(nil, KeyKey, "k"))
	assert.NoError(t, WithCode(nil, CodeDecodeSyntax))
}
