package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cometbft/cometbft/config"
	"github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/p2p"
	"github.com/cometbft/cometbft/privval"
)

// CarbonAppConfig is the application side of the node configuration.
type CarbonAppConfig struct {
	Home          string `mapstructure:"-"`
	TimeoutCommit uint64 `mapstructure:"-"`

	// IndexerListenAddr is where the gin read API listens. Empty disables it.
	IndexerListenAddr string `mapstructure:"indexer_listen_addr"`
}

func DefaultCarbonAppConfig(home string) *CarbonAppConfig {
	return &CarbonAppConfig{
		Home:              home,
		IndexerListenAddr: "127.0.0.1:8547",
	}
}

func NewCarbonAppConfig(home string) *CarbonAppConfig {
	return &CarbonAppConfig{
		Home: home,
	}
}

// Ledger parameters, height-dependent so a future upgrade can reschedule them
// without touching the state machine.

// MaxOwnedRecords is the per-account ownership index capacity.
func MaxOwnedRecords(height uint64) int {
	return 100
}

// MinHoldingBlocks is the eligibility window before a record may be
// transferred, retired, listed or auctioned.
func MinHoldingBlocks(height uint64) uint64 {
	return 144
}

// ClaimCooldownBlocks gates repeated reward claims on the same record.
func ClaimCooldownBlocks(height uint64) uint64 {
	return 144
}

// BlocksPerDay converts raw heights to day-equivalents.
func BlocksPerDay() uint64 {
	return 144
}

// LoyaltyMilestoneBlocks is the record age after which accrual doubles.
func LoyaltyMilestoneBlocks(height uint64) uint64 {
	return 52560
}

// AuctionDurationBlocks fixes the length of every auction.
func AuctionDurationBlocks(height uint64) uint64 {
	return 1440
}

// RewardRateDivisor scales accrual: reward = amount * blocks / divisor.
func RewardRateDivisor(height uint64) uint64 {
	return 1000
}

// ReferralRewardAmount is minted to the referrer on a successful referral.
func ReferralRewardAmount(height uint64) uint64 {
	return 50
}

// ReferralLoyaltyBonus is the loyalty points granted per referral.
func ReferralLoyaltyBonus(height uint64) uint64 {
	return 25
}

// GenesisBalance is the native balance seeded to genesis validator accounts.
func GenesisBalance() uint64 {
	return 1000000000
}

type Config struct {
	*config.Config `mapstructure:",squash"`

	App *CarbonAppConfig `mapstructure:"app"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.carbond")
	}
	config := &Config{
		DefaultCarbonCometConfig(),
		DefaultCarbonAppConfig(home),
	}
	config.RootDir = home
	_ = os.MkdirAll(home+"/config", 0755)
	return config
}

func NewCarbonConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv("$HOME/.carbond")
	}
	_ = os.MkdirAll(home+"/config", 0755)
	config := &Config{
		DefaultCarbonCometConfig(),
		NewCarbonAppConfig(home),
	}
	config.RootDir = home
	return config
}

func InitializeNodeValidatorFiles(config *Config, privKey crypto.PrivKey) (nodeID string, pk crypto.PubKey, err error) {
	nodeKey, err := p2p.LoadOrGenNodeKey(config.NodeKeyFile())
	if err != nil {
		return "", nil, err
	}
	nodeID = string(nodeKey.ID())

	pvKeyFile := config.PrivValidatorKeyFile()
	if err := os.MkdirAll(filepath.Dir(pvKeyFile), 0o777); err != nil {
		return "", nil, fmt.Errorf("could not create directory %q: %w", filepath.Dir(pvKeyFile), err)
	}

	pvStateFile := config.PrivValidatorStateFile()
	if err := os.MkdirAll(filepath.Dir(pvStateFile), 0o777); err != nil {
		return "", nil, fmt.Errorf("could not create directory %q: %w", filepath.Dir(pvStateFile), err)
	}

	var filePV *privval.FilePV
	if privKey == nil {
		filePV = privval.LoadOrGenFilePV(pvKeyFile, pvStateFile)
	} else {
		filePV = privval.NewFilePV(privKey, pvKeyFile, pvStateFile)
		filePV.Save()
	}
	pukey, err := filePV.GetPubKey()
	if err != nil {
		return "", nil, err
	}

	return nodeID, pukey, nil
}

func DefaultCarbonCometConfig() *config.Config {
	cometConfig := config.DefaultConfig()
	cometConfig.Consensus.TimeoutPropose = time.Second * 10
	cometConfig.Consensus.TimeoutPrevote = time.Second * 1
	cometConfig.Consensus.TimeoutPrecommit = time.Second * 1
	cometConfig.Consensus.TimeoutCommit = time.Millisecond * 1200
	return cometConfig
}
