package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/voicefeedback/util"
)

// FileSystem is the slice of the OS the loader touches; tests swap it.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Getwd() (string, error)
	UserConfigDir() (string, error)
}

// RealFileSystem is the FileSystem backed by the OS.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

func (RealFileSystem) Getwd() (string, error) { return os.Getwd() }

func (RealFileSystem) UserConfigDir() (string, error) { return os.UserConfigDir() }

// Resolver finds the config.yml and .env of a binary.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles are the files LoadConfig will read. Empty means none.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles keeps explicit paths from opts and searches for the rest.
// config.yml is looked up under ./cmd/<name>, ./config, the working
// directory and finally <user config dir>/<name>, which is where the CLI
// keeps it once installed.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(r.configCandidates(serviceName))
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(envCandidates(serviceName))
	}
	return files
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func (r *Resolver) configCandidates(serviceName string) []string {
	var paths []string
	for _, up := range []string{".", "..", "../.."} {
		paths = append(paths, up+"/cmd/"+serviceName+"/config.yml")
	}
	paths = append(paths, "./config/config.yml", "../config/config.yml", "./config.yml")
	if dir, err := r.FileSystem.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, serviceName, "config.yml"))
	}
	return paths
}

// envCandidates prefers .env.<name> over .env, nearest directory first.
func envCandidates(serviceName string) []string {
	dirs := []string{"./cmd/" + serviceName, "./config", ".", "..", "../.."}
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, d := range dirs {
			paths = append(paths, d+"/"+name)
		}
	}
	return paths
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig fills cfg from config.yml, then the .env file, then the
// environment. Every mapstructure key of cfg can be overridden by its
// upper-cased, underscore-joined name, with or without the service name as
// prefix: server.base_url reads VOICEFEEDBACK_SERVER_BASE_URL, then
// SERVER_BASE_URL. A missing config file is not an error.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config %s: %w", files.ConfigFile, err)
		}
	}
	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", files.EnvFile, err)
		}
	}

	prefix := envName(serviceName) + "_"
	for _, key := range envKeys(reflect.TypeOf(cfg), "") {
		name := envName(key)
		for _, candidate := range []string{prefix + name, name} {
			if val, ok := os.LookupEnv(candidate); ok {
				v.Set(key, util.SanitizeEnvValue(val))
				break
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", serviceName, err)
	}
	return nil
}

// envName maps a config key to its environment variable name.
func envName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

var timeType = reflect.TypeOf(time.Time{})

// envKeys lists the dotted mapstructure keys of every leaf field of t.
// Squashed structs contribute their fields at the parent level; fields
// tagged "-" and map-valued sections are skipped.
func envKeys(t reflect.Type, parent string) []string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if opts == "squash" || (f.Anonymous && name == "") {
			keys = append(keys, envKeys(ft, parent)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := name
		if parent != "" {
			key = parent + "." + name
		}
		switch {
		case ft.Kind() == reflect.Map:
		case ft.Kind() == reflect.Struct && ft != timeType:
			keys = append(keys, envKeys(ft, key)...)
		default:
			keys = append(keys, key)
		}
	}
	return keys
}
