package main

import (
	"encoding/hex"
	"flag"
	"os"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/arch-labs/arch-go/pkg/arch"
	"github.com/arch-labs/arch-go/pkg/arch/hello"
	"github.com/arch-labs/arch-go/pkg/pointer"
)

type config struct {
	Endpoint    string `mapstructure:"endpoint"`
	ProgramID   string `mapstructure:"program_id"`
	AccountSeed string `mapstructure:"account_seed"`
	Name        string `mapstructure:"name"`
	FeeTxHex    string `mapstructure:"fee_tx_hex"`
}

var defaultConfig = config{
	Endpoint: "http://localhost:9002",
	Name:     "World",
}

var configPath = flag.String("config", "config.yaml", "configuration file path")

const pollAttempts = 60

func main() {
	flag.Parse()

	log := logrus.StandardLogger().WithField("type", "cmd/hello")

	// viper.ReadInConfig only reports a missing file when it had to search
	// for one, so check an explicitly provided path ourselves.
	if _, err := os.Stat(*configPath); err == nil {
		viper.SetConfigFile(*configPath)
	} else if !os.IsNotExist(err) {
		log.WithError(err).Error("failed to check if config exists")
		os.Exit(1)
	}

	err := viper.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		log.WithError(err).Error("failed to load config")
		os.Exit(1)
	}

	cfg := defaultConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		log.WithError(err).Error("failed to unmarshal config")
		os.Exit(1)
	}

	program, err := arch.PubkeyFromString(cfg.ProgramID)
	if err != nil {
		log.WithError(err).Error("invalid program id")
		os.Exit(1)
	}

	seed, err := hex.DecodeString(cfg.AccountSeed)
	if err != nil {
		log.WithError(err).Error("invalid account seed")
		os.Exit(1)
	}
	keypair, err := arch.KeypairFromSeed(seed)
	if err != nil {
		log.WithError(err).Error("failed to load account keypair")
		os.Exit(1)
	}

	feeTx, err := hex.DecodeString(cfg.FeeTxHex)
	if err != nil {
		log.WithError(err).Error("invalid fee transaction hex")
		os.Exit(1)
	}

	account := keypair.Pubkey()
	if address, err := account.TaprootAddress(&chaincfg.RegressionNetParams); err == nil {
		log = log.WithField("account_address", address)
	}
	log = log.WithField("account", account)

	ixn, err := hello.Hello(program, account, cfg.Name, feeTx)
	if err != nil {
		log.WithError(err).Error("failed to build hello instruction")
		os.Exit(1)
	}

	txn := arch.NewTransaction(ixn)
	if err := txn.Sign(keypair); err != nil {
		log.WithError(err).Error("failed to sign transaction")
		os.Exit(1)
	}

	client := arch.New(cfg.Endpoint)

	txid, err := client.SendTransaction(txn)
	if err != nil {
		log.WithError(err).Error("failed to send transaction")
		os.Exit(1)
	}

	log = log.WithField("txid", txid)
	log.Info("transaction submitted")

	if err := awaitProcessed(log, client, txid); err != nil {
		log.WithError(err).Error("transaction did not process")
		os.Exit(1)
	}

	view, err := client.ReadAccountInfo(account)
	if err != nil {
		log.WithError(err).Error("failed to read account back")
		os.Exit(1)
	}

	log.WithField("greeting", string(view.Data)).Info("account updated")
}

func awaitProcessed(log *logrus.Entry, client arch.Client, txid string) error {
	for i := 0; i < pollAttempts; i++ {
		processed, err := client.GetProcessedTransaction(txid)
		if err == arch.ErrTransactionNotFound {
			time.Sleep(arch.PollRate)
			continue
		}
		if err != nil {
			return err
		}

		if processed.Processed() {
			log.WithField("bitcoin_txid", *pointer.StringOrDefault(processed.BitcoinTxid, "pending")).Info("state anchored")
			return nil
		}
		if processed.Failed() {
			return errors.New("transaction failed")
		}

		time.Sleep(arch.PollRate)
	}

	return errors.Errorf("transaction not processed after %d attempts", pollAttempts)
}
