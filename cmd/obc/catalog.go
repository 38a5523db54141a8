package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"obc/catalog"
	"obc/state"
	"obc/utils/table"
)

func catalogArg(cmd *cli.Command) (string, error) {
	name := cmd.Args().Get(0)
	if len(name) == 0 {
		return "", errors.New("no catalog has been specified")
	}
	return filepath.Abs(name)
}

func listCatalog(ctx context.Context, cmd *cli.Command) error {
	name, err := catalogArg(cmd)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(name)
	if err != nil {
		return err
	}

	if id := cmd.String("volume"); len(id) > 0 {
		vol := cat.Volume(id)
		if vol == nil {
			return fmt.Errorf("volume '%s': %w", id, catalog.ErrNotFound)
		}
		fmt.Fprintln(cmd.Root().Writer, unitTable(vol))
		return nil
	}
	fmt.Fprintln(cmd.Root().Writer, volumeTable(cat))
	return nil
}

func volumeTable(cat *catalog.Catalog) string {
	rows := make([][]string, 0, len(cat.Volumes))
	for _, v := range cat.Volumes {
		rows = append(rows, []string{v.ID, v.Number, v.Title, v.Part.String(), v.SourceName(), strconv.Itoa(len(v.AllUnits()))})
	}
	return table.Render(
		[]string{"ID", "Number", "Title", "Part", "Source", "Units"}, rows,
		[]table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight})
}

func unitTable(vol *catalog.Volume) string {
	units := vol.AllUnits()
	rows := make([][]string, 0, len(units))
	for _, u := range units {
		late := ""
		if u.Late != nil {
			late = u.Late.SortKey
		}
		// nested units are indented under their parents
		name := strings.Repeat("  ", u.Depth()) + u.Name
		rows = append(rows, []string{u.Early.SortKey, late, name, u.Class.String(), strconv.Itoa(len(u.Fragments)), strconv.Itoa(len(u.Splits))})
	}
	return table.Render(
		[]string{"Key", "Late", "Name", "Class", "Fragments", "Splits"}, rows,
		[]table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight})
}

func validateCatalog(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	name, err := catalogArg(cmd)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(name)
	if err != nil {
		return err
	}

	var units int
	for _, v := range cat.Volumes {
		units += len(v.AllUnits())
	}
	env.Log.Info("Catalog is valid", zap.String("catalog", name), zap.Int("volumes", len(cat.Volumes)), zap.Int("units", units))
	return nil
}

func renumberCatalog(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	name, err := catalogArg(cmd)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(name)
	if err != nil {
		return err
	}

	changed := catalog.Renumber(cat)
	if err := catalog.Validate(cat); err != nil {
		return fmt.Errorf("renumbered catalog is not valid: %w", err)
	}
	if cmd.Bool("dry-run") || changed == 0 {
		env.Log.Info("Sort keys renumbered", zap.String("catalog", name), zap.Int("changed", changed), zap.Bool("saved", false))
		return nil
	}

	dst := name
	if d := cmd.Args().Get(1); len(d) > 0 {
		dst = d
	}
	if err := catalog.Save(cat, dst); err != nil {
		return err
	}
	env.Log.Info("Sort keys renumbered", zap.String("catalog", dst), zap.Int("changed", changed), zap.Bool("saved", true))
	return nil
}

func exportCatalog(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	name, err := catalogArg(cmd)
	if err != nil {
		return err
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		return errors.New("no destination has been specified")
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if dst == name {
		return errors.New("destination must differ from source catalog")
	}

	cat, err := catalog.Load(name)
	if err != nil {
		return err
	}
	if err := catalog.Save(cat, dst); err != nil {
		return err
	}
	env.Log.Info("Catalog exported", zap.String("from", name), zap.String("to", dst))
	return nil
}
