package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"

	"tomgalvin.uk/imgarray/internal/config"
	"tomgalvin.uk/imgarray/internal/preset"
)

const presetUsage = "imgarray preset save NAME [flags]\n" +
	"       imgarray preset list\n" +
	"       imgarray preset show NAME\n" +
	"       imgarray preset delete NAME"

func (a *App) runPreset(args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(a.Stderr, "Usage: %s\n", presetUsage)
		return 1
	}
	command := args[0]

	f := newFlags("imgarray preset "+command, presetUsage, a.Stderr)
	if code := a.parseFlags(f, args[1:]); code >= 0 {
		return code
	}

	wantArgs := 1
	if command == "list" {
		wantArgs = 0
	}
	if len(f.args) != wantArgs {
		slog.Error("Wrong number of arguments", "command", command, "args", f.args)
		f.fs.Usage()
		return 1
	}

	s, err := a.resolve(f)
	if err != nil {
		slog.Error("Invalid options", "err", err)
		return 1
	}

	r, err := a.openPresets(s.config)
	if err != nil {
		slog.Error("Couldn't open presets", "err", err)
		return 1
	}
	defer r.Close()

	switch command {
	case "save":
		err = a.savePreset(r, f.args[0], s)
	case "list":
		err = a.listPresets(r)
	case "show":
		err = a.showPreset(r, f.args[0])
	case "delete":
		err = a.deletePreset(r, f.args[0])
	default:
		slog.Error("Unknown preset command", "command", command)
		fmt.Fprintf(a.Stderr, "Usage: %s\n", presetUsage)
		return 1
	}
	if err != nil {
		slog.Error("Preset "+command+" failed", "err", err)
		return 1
	}
	return 0
}

func (a *App) savePreset(r *preset.Repository, name string, s settings) error {
	p := preset.New(name, s.options)
	if err := r.Save(p); err != nil {
		return fmt.Errorf("Couldn't save preset %s:\n%w", name, err)
	}
	slog.Debug("Saved preset", "name", p.Name, "uuid", p.Uuid, "options", p.Options)
	fmt.Fprintf(a.Stdout, "Saved preset %q\n", name)
	return nil
}

func (a *App) listPresets(r *preset.Repository) error {
	presets, err := r.List()
	if err != nil {
		return fmt.Errorf("Couldn't list presets:\n%w", err)
	}
	for _, p := range presets {
		o := p.Options
		fmt.Fprintf(a.Stdout, "%s\tthreshold=%d,%d,%d mode=%s invert=%t compact=%t flip_bits=%t\n",
			p.Name, o.Threshold.R, o.Threshold.G, o.Threshold.B, o.Mode,
			o.Invert, o.Compact, o.FlipBits)
	}
	return nil
}

// showPreset prints the preset as a config file.
func (a *App) showPreset(r *preset.Repository, name string) error {
	p, err := r.Get(name)
	if err != nil {
		return fmt.Errorf("Couldn't load preset %s:\n%w", name, err)
	}
	if p == nil {
		return fmt.Errorf("No preset named %s", name)
	}
	fmt.Fprintf(a.Stdout, "# %s (%s), created %s\n", p.Name, p.Uuid, p.CreatedAt.Format("2006-01-02 15:04:05"))
	return config.FromOptions(p.Options, config.Default().Color).Write(a.Stdout)
}

func (a *App) deletePreset(r *preset.Repository, name string) error {
	var deleted bool
	err := r.Transact(func(tx *sql.Tx) error {
		var err error
		deleted, err = r.Delete(tx, name)
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("No preset named %s", name)
	}
	fmt.Fprintf(a.Stdout, "Deleted preset %q\n", name)
	return nil
}
