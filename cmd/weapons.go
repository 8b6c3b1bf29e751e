package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-tf2-metrics/internal/logging"
	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/parser"
	"github.com/pable/go-tf2-metrics/internal/registry"
	"github.com/pable/go-tf2-metrics/internal/report"
	"github.com/pable/go-tf2-metrics/internal/segment"
)

var scanInteractive bool

var weaponsCmd = &cobra.Command{
	Use:   "weapons",
	Short: "Manage the weapon categorisation table",
	Long: `Each weapon named in kill lines maps to the class that carries it and a damage
type. Uncategorised weapons count as class "many" and damage type "melee".`,
}

var weaponsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categorised weapons",
	Args:  cobra.NoArgs,
	RunE:  runWeaponsList,
}

var weaponsSetCmd = &cobra.Command{
	Use:   "set <weapon> <class> <damage-type>",
	Short: "Add or replace a weapon row",
	Args:  cobra.ExactArgs(3),
	RunE:  runWeaponsSet,
}

var weaponsRmCmd = &cobra.Command{
	Use:   "rm <weapon>",
	Short: "Remove a weapon row",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeaponsRm,
}

var weaponsScanCmd = &cobra.Command{
	Use:   "scan [console.log]",
	Short: "List weapons seen in the log that are not categorised yet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWeaponsScan,
}

func init() {
	weaponsScanCmd.Flags().BoolVarP(&scanInteractive, "interactive", "i", false, "prompt for the class and damage type of each weapon")

	weaponsCmd.AddCommand(weaponsListCmd)
	weaponsCmd.AddCommand(weaponsSetCmd)
	weaponsCmd.AddCommand(weaponsRmCmd)
	weaponsCmd.AddCommand(weaponsScanCmd)
}

func runWeaponsList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	weapons, err := db.ListWeapons()
	if err != nil {
		return fmt.Errorf("list weapons: %w", err)
	}
	if len(weapons) == 0 {
		fmt.Fprintln(os.Stdout, "No weapons categorised yet. Run 'tf2metrics weapons scan -i' to add some.")
		return nil
	}
	report.PrintWeapons(os.Stdout, weapons)
	return nil
}

func runWeaponsSet(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	w := model.WeaponInfo{Name: args[0], Class: args[1], DamageType: args[2]}
	if err := db.UpsertWeapon(w); err != nil {
		return fmt.Errorf("set weapon: %w", err)
	}
	fmt.Fprintf(os.Stdout, "%s: %s, %s\n", w.Name, w.Class, w.DamageType)
	return nil
}

func runWeaponsRm(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	if err := db.DeleteWeapon(args[0]); err != nil {
		return fmt.Errorf("remove weapon: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Removed: %s\n", args[0])
	return nil
}

// runWeaponsScan reads kill lines from the whole log, not only the latest game.
func runWeaponsScan(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer logging.Closer(db)

	lines, err := segment.FileSource{Path: logPathArg(args)}.ReadLines(context.Background())
	if err != nil {
		return err
	}
	names := registry.NewSnapshot(parser.ReadConnections(lines)...)
	raw := parser.ParseMatch(lines, names)

	unknown, err := db.UnknownWeapons(parser.Weapons(raw.Kills))
	if err != nil {
		return fmt.Errorf("look up weapons: %w", err)
	}
	if len(unknown) == 0 {
		fmt.Fprintln(os.Stdout, "Every weapon in the log is categorised.")
		return nil
	}

	if !scanInteractive {
		for _, w := range unknown {
			fmt.Fprintln(os.Stdout, w)
		}
		fmt.Fprintf(os.Stdout, "\n%d uncategorised weapon(s). Re-run with -i to categorise them.\n", len(unknown))
		return nil
	}

	rows, err := categorise(cmd.InOrStdin(), cmd.OutOrStdout(), unknown)
	if err != nil {
		return err
	}
	if err := db.UpsertWeapons(rows); err != nil {
		return fmt.Errorf("save weapons: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Saved %d weapon(s).\n", len(rows))
	return nil
}
