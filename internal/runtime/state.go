package runtime

// ConfigPath stores the path to the configuration file provided via CLI flags.
// Empty means the default location, which may be absent.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string
