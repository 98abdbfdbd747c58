// Package settings holds the immutable configuration snapshot shared from
// an instance down to every device created under it.
//
// Configuration is read from the environment once, at instance
// construction, with an optional .env file for development setups. After
// Load returns, the snapshot never changes; scope objects share it by
// pointer.
package settings

import (
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	chassiserr "github.com/gfxlayers/chassis/errors"
)

// GPUAVSettings tunes the GPU-assisted component.
type GPUAVSettings struct {
	ShaderInstrumentation bool   `env:"LAYER_GPUAV_SHADER_INSTRUMENTATION" envDefault:"true"`
	ReserveBindingSlot    bool   `env:"LAYER_GPUAV_RESERVE_BINDING_SLOT" envDefault:"true"`
	MaxInstrumentedCount  uint32 `env:"LAYER_GPUAV_MAX_INSTRUMENTED" envDefault:"4096"`
}

// SyncValSettings tunes the synchronization-hazard component.
type SyncValSettings struct {
	SubmitTimeValidation   bool `env:"LAYER_SYNCVAL_SUBMIT_TIME" envDefault:"true"`
	MessageExtraProperties bool `env:"LAYER_SYNCVAL_EXTRA_PROPERTIES" envDefault:"false"`
}

// Settings is the full configuration snapshot. One instance's settings
// apply to all devices created from it.
type Settings struct {
	// Component enablement. Which classes join the chain.
	Threading           bool `env:"LAYER_THREADING" envDefault:"true"`
	ParameterValidation bool `env:"LAYER_PARAMETER_VALIDATION" envDefault:"true"`
	ObjectTracker       bool `env:"LAYER_OBJECT_TRACKER" envDefault:"true"`
	CoreValidation      bool `env:"LAYER_CORE_VALIDATION" envDefault:"true"`
	BestPractices       bool `env:"LAYER_BEST_PRACTICES" envDefault:"false"`
	GPUAssisted         bool `env:"LAYER_GPU_ASSISTED" envDefault:"false"`
	SyncValidation      bool `env:"LAYER_SYNC_VALIDATION" envDefault:"false"`

	// Fine-grained check toggles consumed by individual components.
	CheckShaders     bool `env:"LAYER_CHECK_SHADERS" envDefault:"true"`
	CheckImageLayout bool `env:"LAYER_CHECK_IMAGE_LAYOUT" envDefault:"true"`

	GPUAV   GPUAVSettings
	SyncVal SyncValSettings
}

var dotenvOnce sync.Once

// Load reads the snapshot from the environment. A missing .env file is not
// an error.
func Load() (*Settings, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, chassiserr.New(chassiserr.PhaseSettings, chassiserr.KindInvalidInput).
			Detail("parse environment").
			Cause(err).
			Build()
	}
	return &s, nil
}

// Default returns the snapshot produced by an empty environment.
func Default() *Settings {
	return &Settings{
		Threading:           true,
		ParameterValidation: true,
		ObjectTracker:       true,
		CoreValidation:      true,
		CheckShaders:        true,
		CheckImageLayout:    true,
		GPUAV: GPUAVSettings{
			ShaderInstrumentation: true,
			ReserveBindingSlot:    true,
			MaxInstrumentedCount:  4096,
		},
		SyncVal: SyncValSettings{
			SubmitTimeValidation: true,
		},
	}
}
