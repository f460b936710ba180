package config

// TargetKind distinguishes whitelist entries that name a single file from
// entries that name a whole directory tree.
type TargetKind string

const (
	KindFile      TargetKind = "file"
	KindDirectory TargetKind = "directory"
)

// SyncTarget is one whitelist entry: a relative path the sync engine is
// permitted to touch. The whitelist is fixed once loaded and never mutated
// during a run.
type SyncTarget struct {
	Path        string     `yaml:"path"`
	Kind        TargetKind `yaml:"kind"`
	Description string     `yaml:"description,omitempty"`
}

// Check is one analyzer checklist item. The checklist is a superset of the
// sync whitelist: it adds items that are informational only and never synced.
type Check struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Kind        TargetKind `yaml:"kind"`

	// Paths are candidate locations; the item is present if any one exists.
	Paths []string `yaml:"paths"`

	// Contains, when set, requires the first candidate path to be a file
	// containing this substring. A key-presence probe, not a full parse —
	// commented-out text can false-positive, which is accepted.
	Contains string `yaml:"contains,omitempty"`

	// Recommendation is emitted verbatim when the item is absent.
	Recommendation string `yaml:"recommendation,omitempty"`
}

// Config represents the template-sync.yaml configuration file.
type Config struct {
	Version int          `yaml:"version"`
	Targets []SyncTarget `yaml:"targets"`
	Checks  []Check      `yaml:"checks,omitempty"`
}

// Default returns the built-in configuration mirroring the canonical
// template: the fixed sync whitelist plus the full infrastructure checklist.
func Default() *Config {
	return &Config{
		Version: 1,
		Targets: []SyncTarget{
			{Path: "tasks", Kind: KindDirectory, Description: "Task definitions"},
			{Path: "justfile", Kind: KindFile, Description: "Just task runner config"},
			{Path: ".gitignore", Kind: KindFile, Description: "Git ignore patterns"},
			{Path: ".python-version", Kind: KindFile, Description: "Python version"},
		},
		Checks: []Check{
			{
				Name: "git_repo", Description: "Git repository",
				Kind: KindDirectory, Paths: []string{".git"},
				Recommendation: "Initialize git repository: `git init` and `git add . && git commit`",
			},
			{
				Name: "pyproject", Description: "pyproject.toml",
				Kind: KindFile, Paths: []string{"pyproject.toml"},
			},
			{
				Name: "uv_config", Description: "UV configuration (in pyproject.toml)",
				Kind: KindFile, Paths: []string{"pyproject.toml"}, Contains: "tool.uv",
				Recommendation: "Add UV configuration to pyproject.toml: `[tool.uv]` section with dependency groups",
			},
			{
				Name: "justfile", Description: "justfile",
				Kind: KindFile, Paths: []string{"justfile"},
				Recommendation: "Copy justfile from template for task automation",
			},
			{
				Name: "tasks", Description: "tasks/ directory",
				Kind: KindDirectory, Paths: []string{"tasks"},
				Recommendation: "Add tasks/ directory with just command definitions",
			},
			{
				Name: "gitignore", Description: ".gitignore",
				Kind: KindFile, Paths: []string{".gitignore"},
			},
			{
				Name: "python_version", Description: ".python-version",
				Kind: KindFile, Paths: []string{".python-version"},
			},
			{
				Name: "precommit", Description: ".pre-commit-config.yaml",
				Kind: KindFile, Paths: []string{".pre-commit-config.yaml"},
				Recommendation: "Add .pre-commit-config.yaml for automated code quality checks",
			},
			{
				Name: "github_workflows", Description: ".github/workflows/",
				Kind: KindDirectory, Paths: []string{".github/workflows"},
				Recommendation: "Add GitHub Actions workflows (.github/workflows/) for CI/CD",
			},
			{
				Name: "dockerfile", Description: "Dockerfile",
				Kind: KindFile, Paths: []string{"docker/Dockerfile.python", "Dockerfile"},
				Recommendation: "Add Dockerfile for containerization",
			},
			{
				Name: "docker_compose", Description: "docker-compose.yml",
				Kind: KindFile, Paths: []string{"docker-compose.yml"},
			},
		},
	}
}
