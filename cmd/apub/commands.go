package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heyaikeedo/apub/pkg/commands/install"
	"github.com/heyaikeedo/apub/pkg/commands/status"
	"github.com/heyaikeedo/apub/pkg/commands/uninstall"
	"github.com/heyaikeedo/apub/pkg/commands/update"
)

var installCmd = &cobra.Command{
	Use:   "install <package-dir>",
	Short: MsgInstallShort,
	Long:  MsgInstallLong,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := install.Install(install.Options{
			ProjectRoot: projectRoot,
			PackageDir:  args[0],
			DryRun:      dryRun,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Installed assets for %s\n", pkg.Name)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <package-dir>",
	Short: MsgUpdateShort,
	Long:  MsgUpdateLong,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := update.Update(update.Options{
			ProjectRoot: projectRoot,
			PackageDir:  args[0],
			DryRun:      dryRun,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated assets for %s\n", pkg.Name)
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <package-name>",
	Short: MsgUninstallShort,
	Long:  MsgUninstallLong,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := uninstall.Uninstall(uninstall.Options{
			ProjectRoot: projectRoot,
			PackageName: args[0],
			DryRun:      dryRun,
		}); err != nil {
			return err
		}
		fmt.Printf("Removed assets for %s\n", args[0])
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [package-name]",
	Short: MsgStatusShort,
	Long:  MsgStatusLong,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		result, err := status.Status(status.Options{
			ProjectRoot: projectRoot,
			PackageName: name,
		})
		if err != nil {
			return err
		}
		printStatus(result)
		return nil
	},
}

func printStatus(result *status.Result) {
	if len(result.Packages) == 0 {
		fmt.Println("No recorded placements.")
		return
	}
	fmt.Printf("Mapping document: %s\n", result.MappingFile)
	for _, pkg := range result.Packages {
		fmt.Printf("\n%s\n", pkg.Key)
		for _, entry := range pkg.Entries {
			marker := "ok"
			if !entry.Present {
				marker = "missing"
			}
			fmt.Printf("  %-7s %s\n", marker, entry.Destination)
		}
	}
}
