package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/monbridgedex/bridge-lib/balances"
	"github.com/monbridgedex/bridge-lib/bridge"
	"github.com/monbridgedex/bridge-lib/chainmanager"
	"github.com/monbridgedex/bridge-lib/chains"
	"github.com/monbridgedex/bridge-lib/chains/evm/signer"
	"github.com/monbridgedex/bridge-lib/common/types"
	"github.com/monbridgedex/bridge-lib/notifications"
	"github.com/monbridgedex/bridge-lib/registry"
	"github.com/monbridgedex/bridge-lib/tracker"
	"github.com/monbridgedex/bridge-lib/wallet"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using process environment")
	}

	privateKey := os.Getenv("BRIDGE_PRIVATE_KEY")
	if privateKey == "" {
		logger.Fatal("BRIDGE_PRIVATE_KEY is required")
	}

	fromKey := types.ChainKey(envOr("BRIDGE_FROM_CHAIN", string(registry.Monad)))
	toKey := types.ChainKey(envOr("BRIDGE_TO_CHAIN", string(registry.Sepolia)))
	amount := envOr("BRIDGE_AMOUNT", "1")
	statePath := envOr("BRIDGE_STATE_PATH", "./bridge-state.db")
	scanAPIBase := os.Getenv("BRIDGE_SCAN_API")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigch
		logger.Info("shutting down")
		cancel()
	}()

	chainSigner, err := signer.NewSignerFromHex(privateKey)
	if err != nil {
		logger.WithError(err).Fatal("failed to load signer key")
	}

	storage, err := notifications.NewBoltStorage(statePath)
	if err != nil {
		logger.WithError(err).Fatal("failed to open state database")
	}
	defer storage.Close()

	store, err := notifications.NewStore(storage, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to load notification store")
	}

	factory := chains.NewChainFactory(chainSigner)
	chainRegistry := chainmanager.NewChainRegistry(factory, logger)
	for _, key := range registry.Keys() {
		config := registry.MustConfig(key)
		if err = chainRegistry.Add(ctx, config); err != nil {
			logger.WithError(err).WithField("chain", key).Fatal("failed to register chain")
		}
	}
	defer func() {
		// Remove closes each chain's RPC client.
		for _, key := range registry.Keys() {
			chainRegistry.Remove(key)
		}
	}()

	sourceConfig, err := registry.Config(fromKey)
	if err != nil {
		logger.WithError(err).Fatal("unknown source chain")
	}

	session, err := wallet.NewSession(ctx, chainSigner, sourceConfig, storage, nil, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create wallet session")
	}
	defer session.Close()

	account, err := session.Connect(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect wallet")
	}

	reader := balances.NewReader(chainRegistry, logger)

	refresh := func(keys ...types.ChainKey) {
		for _, key := range keys {
			balance := reader.TokenBalance(ctx, key, account)
			logger.WithFields(logrus.Fields{
				"chain":   key,
				"balance": balance.Display(),
			}).Info("balance refreshed")
		}
	}

	deliveryTracker := tracker.New(store, tracker.NewScanClient(scanAPIBase, logger), logger,
		tracker.WithDeliveredHook(func(n types.BridgeNotification) {
			refresh(n.ToChain, n.FromChain)
		}),
	)
	deliveryTracker.Start(ctx)
	defer deliveryTracker.Close()

	orchestrator := bridge.NewOrchestrator(chainRegistry, session, store, logger,
		bridge.WithBalanceRefresher(refresh),
		bridge.WithStateObserver(func(state bridge.State) {
			logger.WithField("state", state.String()).Debug("bridge state")
		}),
	)

	route := types.BridgeRoute{From: fromKey, To: toKey}
	result, err := orchestrator.Bridge(ctx, route, amount)
	if err != nil {
		logger.WithError(err).Fatal(commonUserMessage(result))
	}

	logger.WithField("txHash", result.TxHash).Info("bridge submitted, tracking delivery")

	// Track until the message settles or the process is interrupted.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if store.OpenCount() == 0 {
				for _, n := range store.All() {
					if n.TxHash == result.TxHash {
						logger.WithFields(logrus.Fields{
							"txHash": n.TxHash,
							"status": n.Status,
						}).Info("bridge settled")
					}
				}
				return
			}
		}
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func commonUserMessage(result *bridge.Result) string {
	if result != nil && result.UserMessage != "" {
		return result.UserMessage
	}
	return "bridge attempt failed"
}
