// rewardenginectl boots the fungible-token ledger, thread storage, reward
// and logic actors in dependency order, wires each actor's peer addresses,
// starts the crash-recoverable expiration timer and serves the read-only
// HTTP view.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/luxfi/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/luxthread/rewardengine/cmd/rewardenginectl/config"
	"github.com/luxthread/rewardengine/ft"
	"github.com/luxthread/rewardengine/logic"
	"github.com/luxthread/rewardengine/logic/timerwheel"
	"github.com/luxthread/rewardengine/model"
	"github.com/luxthread/rewardengine/reward"
	"github.com/luxthread/rewardengine/storage"
	"github.com/luxthread/rewardengine/storage/httpview"
)

var reportReplyCommand = &cli.Command{
	Action:    reportReply,
	Name:      "report-reply",
	Usage:     "flag a reply for moderation review against a running rewardenginectl server",
	ArgsUsage: "<threadId> <replyId>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "server", Value: "http://127.0.0.1:8089", Usage: "base URL of a running rewardenginectl server"},
		&cli.StringFlag{Name: "caller", Required: true, Usage: "hex-encoded actor id of the reporting caller"},
	},
}

var app = &cli.App{
	Name:  "rewardenginectl",
	Usage: "boot and serve the discussion-board token-reward engine",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file"},
	},
	Commands: []*cli.Command{reportReplyCommand},
}

func init() {
	app.Before = setupLogger
	app.Action = run
}

// setupLogger wraps stderr in colorable (a no-op on platforms that already
// honor ANSI codes, a translator on ones that don't) only when stderr is
// itself a terminal, and disables color entirely otherwise.
func setupLogger(*cli.Context) error {
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	writer := io.Writer(os.Stderr)
	if useColor {
		writer = colorable.NewColorableStderr()
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(writer, log.LevelInfo, useColor)))
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// actorAddr derives a stable placeholder identity for a locally-resolved
// actor. These never leave the process; each actor holds a direct Go
// reference to its peers and only uses the configured address to verify
// config-completeness (notConfigured) before handling requests.
func actorAddr(b byte) model.ActorId {
	var a model.ActorId
	a[0] = b
	return a
}

func run(cliCtx *cli.Context) error {
	cfg, err := config.Load(cliCtx.String("config"))
	if err != nil {
		return err
	}

	logger := log.Root()
	ctx := context.Background()

	// Boot order: FT ledger and Storage have no dependencies on each
	// other, Reward depends on both, Logic depends on all three.
	ftLedger := ft.NewLedger(logger, cfg.MailboxSize)
	store := storage.New(cfg.Admin, logger, cfg.MailboxSize)
	rewardActor := reward.New(cfg.Admin, cfg.EscrowAccount, cfg.CommissionAccount, ftLedger, store, logger, cfg.MailboxSize)

	ftAddr, storageAddr, rewardAddr, logicAddr := actorAddr(1), actorAddr(2), actorAddr(3), actorAddr(4)

	if _, err := rewardActor.Send(ctx, reward.AddAddressFT{Addr: ftAddr}); err != nil {
		return fmt.Errorf("wire reward->ft: %w", err)
	}
	if _, err := rewardActor.Send(ctx, reward.AddAddressStorage{Addr: storageAddr}); err != nil {
		return fmt.Errorf("wire reward->storage: %w", err)
	}

	// logicActor is set once Logic is constructed below; the timer wheel's
	// fire callback closes over the pointer rather than the value so it can
	// be built first and still reach the actor once it exists.
	var logicActor *logic.Logic
	wheel, err := timerwheel.Open(cfg.TimerWALPath, func(threadId model.PostId) {
		if logicActor == nil {
			return
		}
		if _, err := logicActor.Send(ctx, logic.ExpireThread{ThreadId: threadId}); err != nil {
			logger.Error("scheduled expire failed", "thread", threadId, "err", err)
		}
	}, logger)
	if err != nil {
		return fmt.Errorf("open timer wheel: %w", err)
	}
	defer wheel.Close()

	logicActor = logic.New(logic.Config{
		Admin:         cfg.Admin,
		EscrowAccount: cfg.EscrowAccount,
		FT:            ftLedger,
		Storage:       store,
		Reward:        rewardActor,
		Sequencer:     model.NewSequencer(1),
		ExpireDelay:   cfg.ExpireDelay,
		ScheduleExpire: func(threadId model.PostId, delay time.Duration) {
			if err := wheel.Schedule(threadId, delay); err != nil {
				logger.Error("schedule expire failed", "thread", threadId, "err", err)
			}
		},
		Logger:      logger,
		MailboxSize: cfg.MailboxSize,
	})

	// Storage records this address for the Logic half of its admin-or-Logic
	// check on ChangeStatusState. Logic itself sends ChangeStatusState with
	// the admin identity as Caller, so its own calls pass the admin half.
	if _, err := store.Send(ctx, storage.AddLogicContractAddress{Caller: cfg.Admin, Addr: logicAddr}); err != nil {
		return fmt.Errorf("wire storage->logic: %w", err)
	}
	if _, err := logicActor.Send(ctx, logic.AddAddressFT{Addr: ftAddr}); err != nil {
		return fmt.Errorf("wire logic->ft: %w", err)
	}
	if _, err := logicActor.Send(ctx, logic.AddAddressStorage{Addr: storageAddr}); err != nil {
		return fmt.Errorf("wire logic->storage: %w", err)
	}
	if _, err := logicActor.Send(ctx, logic.AddAddressRewardLogic{Addr: rewardAddr}); err != nil {
		return fmt.Errorf("wire logic->reward: %w", err)
	}

	view := httpview.New(store, logicActor, logger)
	mux := http.NewServeMux()
	for path, handler := range view.Routes() {
		mux.Handle(path, handler)
	}
	// reward registers its counters into the process-wide prometheus
	// registry via github.com/luxfi/metric; expose it here rather than
	// duplicating a second metrics surface per actor.
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving read view", "addr", cfg.HTTPListenAddr)
	return http.ListenAndServe(cfg.HTTPListenAddr, mux)
}

// reportReply is a thin HTTP client over a running server's moderation
// route, for operators to flag a reply without reaching for curl.
func reportReply(cliCtx *cli.Context) error {
	if cliCtx.Args().Len() != 2 {
		return fmt.Errorf("usage: report-reply <threadId> <replyId>")
	}
	caller, err := model.ParseActorId(cliCtx.String("caller"))
	if err != nil {
		return err
	}
	var threadId, replyId uint32
	if _, err := fmt.Sscanf(cliCtx.Args().Get(0), "%d", &threadId); err != nil {
		return fmt.Errorf("invalid threadId %q: %w", cliCtx.Args().Get(0), err)
	}
	if _, err := fmt.Sscanf(cliCtx.Args().Get(1), "%d", &replyId); err != nil {
		return fmt.Errorf("invalid replyId %q: %w", cliCtx.Args().Get(1), err)
	}

	body, err := json.Marshal(map[string]any{
		"caller":    caller,
		"thread_id": threadId,
		"reply_id":  replyId,
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(cliCtx.String("server")+"/moderation/report-reply", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("report reply: %w", err)
	}
	defer resp.Body.Close()
	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s: %v", resp.Status, result)
	}
	fmt.Printf("%v\n", result)
	return nil
}
