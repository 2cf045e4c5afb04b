package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/vango-dev/assetref/internal/errors"
	"github.com/vango-dev/assetref/pkg/resource"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "assetref.json"

	// YAMLFileName and YMLFileName are the YAML configuration file names.
	YAMLFileName = "assetref.yaml"
	YMLFileName  = "assetref.yml"

	// DefaultCacheSize is the default number of resource roots cached by the resolver.
	DefaultCacheSize = 128

	// DefaultOutput is the default publish output directory.
	DefaultOutput = "dist"

	// DefaultAddr is the default server address.
	DefaultAddr = ":8080"
)

// fileNames lists the configuration files Load looks for, in order.
var fileNames = []string{ConfigFileName, YAMLFileName, YMLFileName}

// Config represents the complete assetref configuration.
type Config struct {
	// Roots maps module names to resource root directories.
	Roots map[string]string `json:"roots,omitempty" yaml:"roots,omitempty"`

	// Modules is a directory holding one resource root per module, laid out
	// by module name (module "a/b" lives in Modules/a/b).
	Modules string `json:"modules,omitempty" yaml:"modules,omitempty"`

	// SitePrefix is the directory of the output site the assets are copied to.
	SitePrefix string `json:"sitePrefix,omitempty" yaml:"sitePrefix,omitempty"`

	// BaseURL switches rendering to absolute URLs under this base.
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`

	// Manifest is the fingerprint manifest used with BaseURL.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// CacheSize is the number of resource roots kept by the resolver.
	CacheSize int `json:"cacheSize,omitempty" yaml:"cacheSize,omitempty"`

	// Output is the directory assets are published to.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Fingerprint adds content hashes to published file names.
	Fingerprint bool `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`

	// Concurrency bounds parallel publish writes.
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`

	// AssetAttrs lists asset-bearing attributes per element tag.
	AssetAttrs map[string][]string `json:"assetAttrs,omitempty" yaml:"assetAttrs,omitempty"`

	// S3 configures the bucket used as loader or publish target.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// S3Config contains S3 bucket settings.
type S3Config struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is the key prefix assets are published under.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Modules is the key prefix module trees are loaded from. Empty means
	// the bucket is not used as a loader.
	Modules string `json:"modules,omitempty" yaml:"modules,omitempty"`

	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the address to listen on.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Metrics is the path the Prometheus handler is mounted at. Empty disables it.
	Metrics string `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Pretty enables indented HTML output.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Roots:     map[string]string{},
		CacheSize: DefaultCacheSize,
		Output:    DefaultOutput,
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for assetref.json, assetref.yaml and assetref.yml, in that order.
func Load(dir string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("C001").
		WithDetail("No assetref.json or assetref.yaml found in " + dir)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("C002").Wrap(err)
	}

	var cfg *Config
	if isYAML(path) {
		cfg, err = parseYAML(path, data)
	} else {
		cfg, err = parseJSON(path, data)
	}
	if err != nil {
		return nil, err
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func parseJSON(path string, data []byte) (*Config, error) {
	cfg := New()
	err := json.Unmarshal(data, cfg)
	if err == nil {
		return cfg, nil
	}

	coded := errors.New("C002").
		WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
		WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		line, col := position(data, syntaxErr.Offset)
		coded.WithLocation(path, line, col)
	case stderrors.As(err, &typeErr):
		line, col := position(data, typeErr.Offset)
		coded.WithLocation(path, line, col).WithField("key", typeErr.Field)
	}
	return nil, coded
}

func parseYAML(path string, data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ":\n" + yaml.FormatError(err, false, true)).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML")
	}
	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	head := data[:offset]
	line = 1 + bytes.Count(head, []byte{'\n'})
	col = len(head) - bytes.LastIndexByte(head, '\n')
	return line, col
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML when the
// path ends in .yaml or .yml.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Roots == nil {
		c.Roots = map[string]string{}
	}
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	c.SitePrefix = strings.Trim(c.SitePrefix, "/")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return invalid("cacheSize", "cacheSize must not be negative")
	}
	if c.Concurrency < 0 {
		return invalid("concurrency", "concurrency must not be negative")
	}
	for _, seg := range strings.Split(c.SitePrefix, "/") {
		if seg == "." || seg == ".." || (seg == "" && c.SitePrefix != "") {
			return invalid("sitePrefix", "sitePrefix must be a clean relative directory, got "+c.SitePrefix)
		}
	}
	for module, dir := range c.Roots {
		if module == "" || strings.HasPrefix(module, "/") || strings.HasSuffix(module, "/") {
			return invalid("roots", "invalid module name "+`"`+module+`"`)
		}
		if dir == "" {
			return invalid("roots."+module, "module "+module+" has no directory")
		}
	}
	for tag, attrs := range c.AssetAttrs {
		if len(attrs) == 0 {
			return invalid("assetAttrs."+tag, "element "+tag+" lists no attributes")
		}
	}
	if c.Manifest != "" && c.BaseURL == "" {
		return invalid("manifest", "manifest requires baseURL")
	}
	if (c.S3.Prefix != "" || c.S3.Modules != "" || c.S3.Region != "" || c.S3.Endpoint != "") && c.S3.Bucket == "" {
		return invalid("s3.bucket", "s3 settings require a bucket")
	}
	if c.Server.Metrics != "" && !strings.HasPrefix(c.Server.Metrics, "/") {
		return invalid("server.metrics", "metrics path must start with /")
	}
	return nil
}

func invalid(field, detail string) *errors.CodedError {
	return errors.New("C003").WithDetail(detail).WithField("key", field)
}

// resolvePath makes path absolute relative to the config directory.
func (c *Config) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// OutputPath returns the absolute path to the publish output directory.
func (c *Config) OutputPath() string {
	return c.resolvePath(c.Output)
}

// ManifestPath returns the absolute path to the fingerprint manifest.
func (c *Config) ManifestPath() string {
	return c.resolvePath(c.Manifest)
}

// RootPath returns the absolute resource root directory of a module listed
// in Roots.
func (c *Config) RootPath(module string) (string, bool) {
	dir, ok := c.Roots[module]
	if !ok {
		return "", false
	}
	return c.resolvePath(dir), true
}

// Loader builds the resource loader described by the configuration: the
// explicit Roots first, then the Modules directory.
func (c *Config) Loader() resource.Loader {
	registry := resource.NewRegistry()
	for module := range c.Roots {
		dir, _ := c.RootPath(module)
		registry.Register(module, os.DirFS(dir))
	}
	if c.Modules == "" {
		return registry
	}
	return resource.Chain{registry, resource.NewDirLoader(c.resolvePath(c.Modules))}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing the configuration, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C001").
				WithDetail("No assetref.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the closest parent holding a configuration file.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
