package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/pufferfish/pkg/behavior"
)

func TestDefaultGameConfigMatchesBehaviorDefaults(t *testing.T) {
	cfg := DefaultGameConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if got, want := cfg.Pufferfish.Behavior(), behavior.DefaultConfig(); got != want {
		t.Errorf("Behavior() = %+v, want %+v", got, want)
	}

	w, h := cfg.ScreenSize()
	if w != 960 || h != 640 {
		t.Errorf("ScreenSize = %dx%d, want 960x640", w, h)
	}
}

func TestLoadGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GameConfig)
	}{
		{
			name: "完整配置",
			yamlContent: `
arena:
  width: 20
  height: 10
  pixelsPerUnit: 32
pufferfish:
  targetTag: Diver
  rotationSpeed: 1.5
  minSpeed: 1
  maxSpeed: 3
  numberOfSpines: 12
  spineSpeed: 4
  explosionDelay: 0.5
obstacles:
  - { x: 1, y: 2, width: 3, height: 4 }
sounds:
  SOUND_OTHER: assets/sounds/other.wav
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Pufferfish.TargetTag != "Diver" {
					t.Errorf("targetTag = %q, want Diver", cfg.Pufferfish.TargetTag)
				}
				if cfg.Pufferfish.NumberOfSpines != 12 {
					t.Errorf("numberOfSpines = %d, want 12", cfg.Pufferfish.NumberOfSpines)
				}
				b := cfg.Pufferfish.Behavior()
				if b.ExplosionDelay != 0.5 || b.SpineSpeed != 4 || b.RotationSpeed != 1.5 {
					t.Errorf("behavior config mismatch: %+v", b)
				}
				// 未出现的字段保留默认值
				if b.SoundDelay != behavior.DefaultSoundDelay {
					t.Errorf("soundDelay = %v, want default %v", b.SoundDelay, behavior.DefaultSoundDelay)
				}
				if len(cfg.Obstacles) != 1 || cfg.Obstacles[0].Height != 4 {
					t.Errorf("obstacles = %+v", cfg.Obstacles)
				}
				// 音效表与默认表合并
				if len(cfg.Sounds) != 2 {
					t.Errorf("sounds = %v, want 2 entries", cfg.Sounds)
				}
			},
		},
		{
			name: "尖刺数量为零合法",
			yamlContent: `
pufferfish:
  numberOfSpines: 0
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Pufferfish.NumberOfSpines != 0 {
					t.Errorf("numberOfSpines = %d, want 0", cfg.Pufferfish.NumberOfSpines)
				}
			},
		},
		{
			name: "负速度不校验",
			yamlContent: `
pufferfish:
  spineSpeed: -2
  minSpeed: 3
  maxSpeed: 1
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Pufferfish.SpineSpeed != -2 {
					t.Errorf("spineSpeed = %v, want -2", cfg.Pufferfish.SpineSpeed)
				}
			},
		},
		{
			name: "空目标标签",
			yamlContent: `
pufferfish:
  targetTag: ""
`,
			wantErr:     true,
			errContains: "targetTag must not be empty",
		},
		{
			name: "负尖刺数量",
			yamlContent: `
pufferfish:
  numberOfSpines: -1
`,
			wantErr:     true,
			errContains: "numberOfSpines must be >= 0",
		},
		{
			name: "负延迟",
			yamlContent: `
pufferfish:
  selfDestructDelay: -1
`,
			wantErr:     true,
			errContains: "delays must be >= 0",
		},
		{
			name: "非法场地",
			yamlContent: `
arena:
  pixelsPerUnit: 0
`,
			wantErr:     true,
			errContains: "pixelsPerUnit must be positive",
		},
		{
			name: "非法障碍物",
			yamlContent: `
obstacles:
  - { x: 1, y: 1, width: 0, height: 1 }
`,
			wantErr:     true,
			errContains: "obstacle 0 size must be positive",
		},
		{
			name:        "YAML 语法错误",
			yamlContent: "pufferfish: [unclosed",
			wantErr:     true,
			errContains: "failed to parse pufferfish config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "pufferfish.yaml")
			if err := os.WriteFile(tmpFile, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}

			cfg, err := LoadGameConfig(tmpFile)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadGameConfigValidationSentinel(t *testing.T) {
	_, err := ParseGameConfig([]byte("pufferfish:\n  numberOfSpines: -3\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read pufferfish config") {
		t.Errorf("expected read error, got %v", err)
	}
}

// TestLoadBundledConfig 确保仓库自带的配置文件可以加载
func TestLoadBundledConfig(t *testing.T) {
	cfg, err := LoadGameConfig(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("bundled config failed to load: %v", err)
	}
	if cfg.Pufferfish.NumberOfSpines != 8 {
		t.Errorf("bundled numberOfSpines = %d, want 8", cfg.Pufferfish.NumberOfSpines)
	}
	if len(cfg.Obstacles) == 0 {
		t.Error("bundled config should define obstacles")
	}
}
