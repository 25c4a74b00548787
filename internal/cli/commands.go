package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
)

func newLoginCmd(a *app, opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Entra no backend e guarda a sessão no perfil local",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ADLINK_PASSWORD")
			}
			if password == "" {
				return errors.New("informe --password ou ADLINK_PASSWORD")
			}

			session, err := a.backend.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			if err := a.linking.AttachBackendSession(cmd.Context(), opts.profile, session.Token, session.User); err != nil {
				return err
			}

			name := email
			if session.User != nil && session.User.Name != "" {
				name = session.User.Name
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.styles.title.Render("Sessão iniciada para "+name))
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "e-mail da conta")
	cmd.Flags().StringVar(&password, "password", "", "senha (ou ADLINK_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newConnectCmd(a *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Abre o consentimento da plataforma e carrega a hierarquia",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			prompt := func(authURL string) error {
				_, err := fmt.Fprintf(out, "Abra no navegador para autorizar:\n%s\n", authURL)
				return err
			}

			snapshot, err := a.linking.ConnectWith(cmd.Context(), opts.profile, prompt)
			if err != nil {
				return err
			}

			return writeOutput(out, opts, snapshot, func() string { return renderSnapshot(snapshot, a.styles) })
		},
	}
}

func newHierarchyCmd(a *app, opts *options) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "hierarchy",
		Short: "Mostra empresas e contas com a seleção atual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				snapshot *linking.Snapshot
				err      error
			)
			if refresh {
				snapshot, err = a.linking.RefreshHierarchy(cmd.Context(), opts.profile)
			} else {
				snapshot, err = a.linking.Snapshot(cmd.Context(), opts.profile)
			}
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts, snapshot, func() string { return renderSnapshot(snapshot, a.styles) })
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "busca a hierarquia novamente na plataforma")

	return cmd
}

func newToggleCmd(a *app, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Alterna a seleção de uma empresa ou conta",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "business <business-id>",
			Short: "Seleciona ou limpa todas as contas da empresa",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				snapshot, err := a.linking.ToggleBusiness(cmd.Context(), opts.profile, args[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts, snapshot, func() string { return renderSnapshot(snapshot, a.styles) })
			},
		},
		&cobra.Command{
			Use:   "account <business-id> <account-id>",
			Short: "Alterna uma conta de anúncio",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				snapshot, err := a.linking.ToggleAccount(cmd.Context(), opts.profile, args[0], args[1])
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts, snapshot, func() string { return renderSnapshot(snapshot, a.styles) })
			},
		},
	)

	return cmd
}

func newSaveCmd(a *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Grava as contas selecionadas no backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := a.linking.Save(cmd.Context(), opts.profile)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts, record, func() string {
				return a.styles.title.Render(fmt.Sprintf("Vínculo %s salvo com %d contas", record.ID, record.AccountCount()))
			})
		},
	}
}

func newLinkedCmd(a *app, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linked",
		Short: "Consulta e remove vínculos salvos",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Lista os vínculos da empresa",
			RunE: func(cmd *cobra.Command, _ []string) error {
				records, err := a.linking.ListLinked(cmd.Context(), opts.profile)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), opts, records, func() string { return renderLinked(records, a.styles) })
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove um vínculo",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.linking.DeleteLinked(cmd.Context(), opts.profile, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Vínculo removido: "+args[0])
				return err
			},
		},
	)

	return cmd
}

func newDisconnectCmd(a *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Esquece a credencial da plataforma, mantendo a seleção",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := a.linking.Disconnect(cmd.Context(), opts.profile)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts, snapshot, func() string { return renderSnapshot(snapshot, a.styles) })
		},
	}
}

func newLogoutCmd(a *app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Apaga todo o estado local do perfil",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.linking.Teardown(cmd.Context(), opts.profile); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Estado local removido")
			return err
		},
	}
}
