package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/rayleeriver/jsonmap"
	"github.com/rayleeriver/jsonmap/codec"
	"github.com/rayleeriver/jsonmap/format"
	"github.com/rayleeriver/jsonmap/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const version = "0.1.0"

var (
	outdir             string
	outFormat          string
	pretty             bool
	key                string
	valueType          string
	configPath         string
	needOutputConfTmpl bool
)

// Config is the jsonmapc config file.
type Config struct {
	Log *log.Options `yaml:"log"`
}

func main() {
	var rootCmd = &cobra.Command{
		Use:     "jsonmapc [FILE]...",
		Version: genVersion(),
		Short:   "Jsonmapc is an order-preserving JSON and YAML converter",
		Long: `Jsonmapc converts documents between JSON and YAML with member order
preserved, and looks up single members through typed accessors.`,
		Run: runCmd,
	}

	rootCmd.Flags().StringVarP(&outdir, "outdir", "o", ".", "Output directory, default is current directory")
	rootCmd.Flags().StringVarP(&outFormat, "format", "f", "", "Output format: json or yaml, default is the opposite of the input format")
	rootCmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent output for human reading")
	rootCmd.Flags().StringVarP(&key, "key", "k", "", "Print the member under this key instead of converting")
	rootCmd.Flags().StringVarP(&valueType, "type", "t", "raw", `Accessor used with --key. Available types: raw, bool, string,
rune, int8, int16, int32, int64, int, float32, and float64.
raw prints the stored value without coercion.
`)
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "./config.yaml", "Config file path")
	rootCmd.Flags().BoolVar(&needOutputConfTmpl, "output-config-template", false, "Output config template")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

func runCmd(cmd *cobra.Command, args []string) {
	if needOutputConfTmpl {
		outputConfTmpl()
		return
	}

	conf := &Config{}
	err := loadConf(configPath, conf)
	if err != nil {
		log.Errorf("load config failed: %+v", err)
		os.Exit(-1)
	}
	if err := log.Init(conf.Log); err != nil {
		log.Errorf("init log failed: %+v", err)
		os.Exit(-1)
	}
	log.Debugf("loaded jsonmapc config: %+v", spew.Sdump(conf))
	if len(args) == 0 {
		cmd.Usage()
		return
	}
	for _, file := range args {
		if err := process(file); err != nil {
			log.Errorf("process %s failed: %+v", file, err)
			os.Exit(-1)
		}
	}
}

func process(path string) error {
	d, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	m, err := jsonmap.FromText(string(d), format.GetFormat(path))
	if err != nil {
		return err
	}
	if key != "" {
		fmt.Printf("%s: %s\n", path, lookup(m))
		return nil
	}
	return convert(path, m)
}

func convert(path string, m *jsonmap.Map) error {
	outFmt := targetFormat(format.GetFormat(path))
	out, err := m.ToText(outFmt, codec.Pretty(pretty))
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outdir, base+format.Format2Ext(outFmt))
	return errors.WithStack(os.WriteFile(outPath, []byte(out), 0644))
}

func targetFormat(in format.Format) format.Format {
	if outFormat != "" {
		return format.Format(outFormat)
	}
	if in == format.JSON {
		return format.YAML
	}
	return format.JSON
}

func lookup(m *jsonmap.Map) string {
	switch valueType {
	case "raw":
		if v, ok := m.Get(key); ok {
			return fmt.Sprintf("%v", v)
		}
	case "bool":
		if v, ok := m.GetBool(key); ok {
			return strconv.FormatBool(v)
		}
	case "string":
		if v, ok := m.GetString(key); ok {
			return v
		}
	case "rune":
		if v, ok := m.GetRune(key); ok {
			return string(v)
		}
	case "int8":
		if v, ok := m.GetInt8(key); ok {
			return strconv.FormatInt(int64(v), 10)
		}
	case "int16":
		if v, ok := m.GetInt16(key); ok {
			return strconv.FormatInt(int64(v), 10)
		}
	case "int32":
		if v, ok := m.GetInt32(key); ok {
			return strconv.FormatInt(int64(v), 10)
		}
	case "int64":
		if v, ok := m.GetInt64(key); ok {
			return strconv.FormatInt(v, 10)
		}
	case "int":
		if v, ok := m.GetInt(key); ok {
			return strconv.Itoa(v)
		}
	case "float32":
		if v, ok := m.GetFloat32(key); ok {
			return strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
	case "float64":
		if v, ok := m.GetFloat64(key); ok {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	default:
		log.Errorf("unknown type: %s", valueType)
		os.Exit(-1)
	}
	return "<absent>"
}

func loadConf(path string, out interface{}) error {
	d, err := os.ReadFile(path)
	if err != nil {
		// a missing config file keeps the defaults
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WithStack(err)
	}
	err = yaml.Unmarshal(d, out)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func outputConfTmpl() {
	defaultConf := &Config{
		Log: &log.Options{
			Mode:  log.ModeFull,
			Level: "INFO",
			Sink:  "CONSOLE",
		},
	}
	d, err := yaml.Marshal(defaultConf)
	if err != nil {
		fmt.Printf("marshal failed: %+v\n", err)
		os.Exit(-1)
	}
	fmt.Println(string(d))
}

func genVersion() string {
	ver := version
	info := jsonmap.GetVersionInfo()
	if info.Revision != "" {
		ver += fmt.Sprintf(" (%s, %s)", info.Revision, info.Time)
	}
	return ver
}
