package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/gfxlayers/chassis/api"
	"github.com/gfxlayers/chassis/settings"
	"github.com/gfxlayers/chassis/validation"
)

func main() {
	var (
		enable      = flag.String("enable", "", "Components to force on (comma-separated names)")
		disable     = flag.String("disable", "", "Components to force off (comma-separated names)")
		entries     = flag.Bool("entries", false, "List intercepted entry points and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*enable, *disable, *entries); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(enableStr, disableStr string, listEntries bool) error {
	cfg, err := settings.Load()
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, enableStr, true); err != nil {
		return err
	}
	if err := applyOverrides(cfg, disableStr, false); err != nil {
		return err
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	on := lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	off := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	if !styled {
		on = lipgloss.NewStyle()
		off = lipgloss.NewStyle()
	}

	if listEntries {
		fmt.Println("Intercepted entry points:")
		for e := api.EntryPoint(0); e < api.EntryPointCount; e++ {
			fmt.Printf("  %s\n", e)
		}
		return nil
	}

	fmt.Println("Component chain (priority order):")
	for t := validation.Type(0); t < validation.TypeCount; t++ {
		state := "off"
		style := off
		if validation.Enabled(cfg, t) {
			state = "on"
			style = on
			if validation.DefaultRegistry.Factory(t) == nil {
				state = "on, no factory registered"
				style = off
			}
		}
		fmt.Printf("  %-22s %s\n", t, style.Render(state))
	}

	fmt.Println("\nSettings:")
	fmt.Printf("  check_shaders:      %v\n", cfg.CheckShaders)
	fmt.Printf("  check_image_layout: %v\n", cfg.CheckImageLayout)
	if cfg.GPUAssisted {
		fmt.Printf("  gpuav.shader_instrumentation: %v\n", cfg.GPUAV.ShaderInstrumentation)
		fmt.Printf("  gpuav.reserve_binding_slot:   %v\n", cfg.GPUAV.ReserveBindingSlot)
		fmt.Printf("  gpuav.max_instrumented:       %d\n", cfg.GPUAV.MaxInstrumentedCount)
	}
	if cfg.SyncValidation {
		fmt.Printf("  syncval.submit_time:      %v\n", cfg.SyncVal.SubmitTimeValidation)
		fmt.Printf("  syncval.extra_properties: %v\n", cfg.SyncVal.MessageExtraProperties)
	}
	return nil
}

func applyOverrides(cfg *settings.Settings, names string, enabled bool) error {
	if names == "" {
		return nil
	}
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		t, ok := typeByName(name)
		if !ok {
			return fmt.Errorf("unknown component %q", name)
		}
		setEnabled(cfg, t, enabled)
	}
	return nil
}

func typeByName(name string) (validation.Type, bool) {
	for t := validation.Type(0); t < validation.TypeCount; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

func setEnabled(cfg *settings.Settings, t validation.Type, enabled bool) {
	switch t {
	case validation.TypeThreading:
		cfg.Threading = enabled
	case validation.TypeParameterValidation:
		cfg.ParameterValidation = enabled
	case validation.TypeObjectTracker:
		cfg.ObjectTracker = enabled
	case validation.TypeCoreValidation:
		cfg.CoreValidation = enabled
	case validation.TypeBestPractices:
		cfg.BestPractices = enabled
	case validation.TypeGPUAssisted:
		cfg.GPUAssisted = enabled
	case validation.TypeSyncValidation:
		cfg.SyncValidation = enabled
	}
}
