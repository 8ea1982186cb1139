package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fileutils/pkg/fileutils"
)

func (a *app) pwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the current working directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			dir, err := a.utils.Pwd()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, dir)
			return nil
		},
	}
}

func (a *app) mkdirCmd() *cobra.Command {
	var parents bool
	var mode string

	cmd := &cobra.Command{
		Use:   "mkdir DIR...",
		Short: "Create directories",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			var opts []fileutils.Option
			if mode != "" {
				m, err := fileutils.ParseMode(mode)
				if err != nil {
					return fmt.Errorf("%w: %w", errUsage, err)
				}
				opts = append(opts, fileutils.WithMode(m))
			}

			if parents {
				_, err := a.utils.MkdirP(args, opts...)
				return err
			}
			return a.utils.Mkdir(args, opts...)
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "Create missing parent directories")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Octal permission bits for new directories")
	return cmd
}

func (a *app) rmdirCmd() *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "rmdir DIR...",
		Short: "Remove empty directories",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			var opts []fileutils.Option
			if parents {
				opts = append(opts, fileutils.WithParents())
			}
			return a.utils.Rmdir(args, opts...)
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "Also remove empty ancestors")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	var recursive, force bool

	cmd := &cobra.Command{
		Use:   "rm PATH...",
		Short: "Remove files or directory trees",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			switch {
			case recursive && force:
				return a.utils.RmRF(args)
			case recursive:
				return a.utils.RmR(args)
			case force:
				return a.utils.RmF(args)
			}
			for _, path := range args {
				if err := a.utils.RemoveFile(path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove directories and their contents")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Ignore missing paths")
	return cmd
}

func (a *app) cpCmd() *cobra.Command {
	var preserve bool

	cmd := &cobra.Command{
		Use:   "cp SRC... DST",
		Short: "Copy files",
		Long: `Copy one or more files. When DST is an existing directory each source is
copied into it under its base name.`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(_ *cobra.Command, args []string) error {
			var opts []fileutils.Option
			if preserve {
				opts = append(opts, fileutils.WithPreserve())
			}
			return a.utils.Cp(args[:len(args)-1], args[len(args)-1], opts...)
		},
	}

	cmd.Flags().BoolVarP(&preserve, "preserve", "p", false, "Accepted for compatibility; metadata is not preserved")
	return cmd
}

func (a *app) uptodateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uptodate TARGET [SRC...]",
		Short: "Exit 0 when TARGET exists and is newer than every SRC",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			if a.utils.Uptodate(args[0], args[1:]) {
				return nil
			}
			return errNotUpToDate
		},
	}
}
