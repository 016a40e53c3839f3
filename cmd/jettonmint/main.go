// cmd/jettonmint/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	mintapp "jettonmint/internal/application/mint"
	jettondom "jettonmint/internal/domain/jetton"
	appcfg "jettonmint/internal/infra/config"
	"jettonmint/internal/platform/di"
)

// mint コマンドの既定値 (TON / jetton の人間向け単位)
const (
	defaultValue  = "1"
	defaultAmount = "1.3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "jettonmint",
		Usage: "send MintJettonSample to the deployed jetton master",
		Commands: []*cli.Command{
			mintCommand(),
			resolveCommand(),
			migrateCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("[jettonmint] %v", describe(err))
	}
}

func mintCommand() *cli.Command {
	return &cli.Command{
		Name:  "mint",
		Usage: "resolve the master contract and submit one MintJettonSample message",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "value", Value: defaultValue, Usage: "TON attached to the message"},
			&cli.StringFlag{Name: "amount", Value: defaultAmount, Usage: "jettons to mint (human units)"},
			&cli.BoolFlag{Name: "bounce", Value: false, Usage: "return unconsumed value if the master fails"},
			&cli.BoolFlag{Name: "dry-run", Usage: "build the message and print it without sending"},
		},
		Action: func(cctx *cli.Context) error {
			value, err := jettondom.ToNano(cctx.String("value"))
			if err != nil {
				return fmt.Errorf("--value: %w", err)
			}
			amount, err := jettondom.ToNano(cctx.String("amount"))
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			in := mintapp.MintSampleInput{
				Value:  value,
				Amount: amount,
				Bounce: cctx.Bool("bounce"),
			}
			dryRun := cctx.Bool("dry-run")

			cfg, err := appcfg.Load()
			if err != nil {
				return err
			}
			container, err := di.NewContainer(cctx.Context, cfg, di.Options{NeedSender: !dryRun})
			if err != nil {
				return err
			}
			defer container.Close()

			ctx := cctx.Context
			if cfg.DispatchTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.DispatchTimeout)
				defer cancel()
			}

			var res mintapp.MintSampleResult
			if dryRun {
				res, err = container.MintUC.PreviewMintSample(ctx, container.Network, in)
			} else {
				res, err = container.MintUC.MintSample(ctx, container.Network, container.Sender, in)
			}
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "print the address of the deployed master contract",
		Action: func(cctx *cli.Context) error {
			cfg, err := appcfg.Load()
			if err != nil {
				return err
			}
			container, err := di.NewContainer(cctx.Context, cfg, di.Options{})
			if err != nil {
				return err
			}
			defer container.Close()

			contract, err := container.MintUC.Resolve(cctx.Context, container.Network)
			if err != nil {
				return err
			}
			opcode, _ := contract.Schema.Opcode(jettondom.TagMintJettonSample)
			fmt.Printf("network: %s\n", contract.Network)
			fmt.Printf("master:  %s\n", contract.Address.String())
			fmt.Printf("opcode:  0x%08x (%s)\n", opcode, jettondom.TagMintJettonSample)
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the jetton_deployments table (DEPLOYMENT_SOURCE=postgres)",
		Action: func(cctx *cli.Context) error {
			cfg, err := appcfg.Load()
			if err != nil {
				return err
			}
			if cfg.DeploymentSource != appcfg.DeploymentSourcePostgres {
				return fmt.Errorf("migrate: DEPLOYMENT_SOURCE must be %q (got %q)", appcfg.DeploymentSourcePostgres, cfg.DeploymentSource)
			}
			container, err := di.NewContainer(cctx.Context, cfg, di.Options{})
			if err != nil {
				return err
			}
			defer container.Close()

			if err := container.DeploymentsPG.EnsureSchema(cctx.Context); err != nil {
				return err
			}
			log.Printf("[jettonmint] jetton_deployments is ready")
			return nil
		},
	}
}

func printResult(res mintapp.MintSampleResult) {
	state := "accepted by network (not confirmed)"
	if !res.Sent {
		state = "dry-run (not sent)"
	}
	fmt.Printf("status:  %s\n", state)
	fmt.Printf("network: %s\n", res.Network)
	fmt.Printf("master:  %s\n", res.Master)
	fmt.Printf("op:      %s opcode=0x%08x queryId=%d\n", jettondom.TagMintJettonSample, res.Opcode, res.QueryID)
	fmt.Printf("amount:  %s (%s)\n", jettondom.FromNano(res.Amount), res.Amount.String())
	fmt.Printf("value:   %s TON bounce=%t\n", jettondom.FromNano(res.Value), res.Bounce)
	fmt.Printf("body:    %s\n", res.BodyBOC)
}

// describe は core のエラー種別を添えて返します。
func describe(err error) string {
	var re *jettondom.ResolutionError
	var se *jettondom.SubmissionError
	switch {
	case errors.As(err, &re):
		return "resolution failed: " + err.Error()
	case errors.As(err, &se):
		return "submission failed: " + err.Error()
	default:
		return err.Error()
	}
}
