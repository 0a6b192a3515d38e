// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/metaspacelab/marketplace/api"
	"github.com/metaspacelab/marketplace/auction"
	"github.com/metaspacelab/marketplace/continuum"
	"github.com/metaspacelab/marketplace/logdb"
	"github.com/metaspacelab/marketplace/lvldb"
	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/registry"
	"github.com/metaspacelab/marketplace/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Marketplace",
		Usage:     "Metaverse marketplace node",
		Copyright: "2026 MetaSpace",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			blockIntervalFlag,
			verbosityFlag,
			memFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	initLogger(ctx)
	defer func() { slog.Info("exited") }()

	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		fatal("load config:", err)
	}
	admin, err := cfg.adminAddress()
	if err != nil {
		fatal("parse admin address:", err)
	}
	royalties, err := cfg.royaltyTable()
	if err != nil {
		fatal("parse royalty table:", err)
	}
	metaverses, err := cfg.metaverseTable()
	if err != nil {
		fatal("parse metaverse table:", err)
	}

	var mainDB *lvldb.LevelDB
	var logDB *logdb.LogDB
	if ctx.Bool(memFlag.Name) {
		mainDB = openMemMainDB()
		logDB = openMemLogDB()
	} else {
		dataDir := makeDataDir(ctx)
		mainDB = openMainDB(dataDir)
		logDB = openLogDB(dataDir)
	}
	defer func() { slog.Info("closing main database..."); mainDB.Close() }()
	defer func() { slog.Info("closing log database..."); logDB.Close() }()

	creator := state.NewCreator(mainDB)

	nftReg := registry.NewNFTRegistry(royalties)
	metaverseReg := registry.NewMetaverseRegistry(metaverses)

	auctEngine := auction.NewEngine(nftReg, metaverseReg, auction.DefaultParams())
	auctEngine.SetAdmin(admin)

	contParams := continuum.DefaultParams()
	if cfg.Continuum.SessionDuration > 0 {
		contParams.SessionDuration = cfg.Continuum.SessionDuration
	}
	if cfg.Continuum.InitialBid != "" {
		bid, err := parseAmount(cfg.Continuum.InitialBid)
		if err != nil {
			fatal("parse continuum initial bid:", err)
		}
		contParams.InitialBid = bid
	}
	if cfg.Continuum.MaxX > 0 || cfg.Continuum.MaxY > 0 {
		contParams.DefaultBounds = continuum.MaxBounds{MaxX: cfg.Continuum.MaxX, MaxY: cfg.Continuum.MaxY}
	}
	contEngine := continuum.NewEngine(auctEngine, contParams)
	contEngine.SetAdmin(admin)

	if err := applyGenesis(cfg, creator, nftReg); err != nil {
		fatal("apply genesis:", err)
	}

	scheduler := auction.NewScheduler(auctEngine, meta.MaxFinalizationsPerBlock)

	apiHandler, subs, apiCloser := api.New(creator, auctEngine.Store(), contEngine, logDB, ctx.String(apiCorsFlag.Name))
	defer apiCloser()

	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer srvCloser()

	interval := time.Duration(ctx.Int(blockIntervalFlag.Name)) * time.Second
	node := NewNode(creator, logDB, scheduler, contEngine, subs, interval)
	node.Start()
	defer node.Stop()

	slog.Info("marketplace node started", "version", fullVersion(), "api", apiURL, "blockInterval", interval)

	<-exitSignal
	slog.Info("exit signal received, shutting down...")
	return nil
}

func handleExitSignal() chan os.Signal {
	exitSignal := make(chan os.Signal, 1)
	signal.Notify(exitSignal, os.Interrupt, syscall.SIGTERM)
	return exitSignal
}
