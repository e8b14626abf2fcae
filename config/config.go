/*
 *  Copyright (C) 2017 gyee authors
 *
 *  This file is part of the gyee library.
 *
 *  The gyee library is free software: you can redistribute it and/or modify
 *  it under the terms of the GNU General Public License as published by
 *  the Free Software Foundation, either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  The gyee library is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *  GNU General Public License for more details.
 *
 *  You should have received a copy of the GNU General Public License
 *  along with the gyee library.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/yeeco/ledger/account"
	"github.com/yeeco/ledger/balances"
	"github.com/yeeco/ledger/common"
	"github.com/yeeco/ledger/system"
	"github.com/yeeco/ledger/utils"
)

type Config struct {
	App     *AppConfig       `toml:"app"`
	Storage *StorageConfig   `toml:"storage"`
	Ledger  *LedgerConfig    `toml:"ledger"`
	Genesis []*GenesisConfig `toml:"genesis"`
}

type AppConfig struct {
	LogLevel string `toml:"log_level"`
	// empty keeps logs on stderr only
	LogDir      string `toml:"log_dir"`
	LogRotation uint   `toml:"log_rotation"`
}

type StorageConfig struct {
	DataDir   string `toml:"data_dir"`
	CacheSize int    `toml:"cache_size"`
}

//existential deposit, reference policy, dust handling, reserved/frozen toggles
type LedgerConfig struct {
	ExistentialDeposit uint64 `toml:"existential_deposit"`
	RefPolicy          string `toml:"ref_policy"`
	DustSink           string `toml:"dust_sink"`
	DustAccount        string `toml:"dust_account"`
	SlashReserved      bool   `toml:"slash_reserved"`
	FrozenFunds        bool   `toml:"frozen_funds"`
}

type GenesisConfig struct {
	Account  string `toml:"account"`
	Free     uint64 `toml:"free"`
	Reserved uint64 `toml:"reserved"`
}

const (
	DustSinkBurn    = "burn"
	DustSinkAccount = "account"
)

func Default() *Config {
	return &Config{
		App: &AppConfig{
			LogLevel:    "info",
			LogRotation: 24,
		},
		Storage: &StorageConfig{
			DataDir:   utils.DefaultDataDir(),
			CacheSize: 1024,
		},
		Ledger: &LedgerConfig{
			ExistentialDeposit: 1,
			RefPolicy:          system.Sufficients.String(),
			DustSink:           DustSinkBurn,
			SlashReserved:      true,
			FrozenFunds:        true,
		},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func SaveConfigToFile(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "config: create directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "config: create %s", path)
	}
	defer f.Close()
	return errors.Wrap(toml.NewEncoder(f).Encode(config), "config: encode")
}

// GetConfig loads the file named by --config, if any, and applies the global
// flags on top.
func GetConfig(ctx *cli.Context) (*Config, error) {
	config := Default()
	if ctx.GlobalIsSet(ConfigFlag.Name) {
		var err error
		if config, err = Load(ctx.GlobalString(ConfigFlag.Name)); err != nil {
			return nil, err
		}
	}
	if ctx.GlobalIsSet(DataDirFlag.Name) {
		config.Storage.DataDir = ctx.GlobalString(DataDirFlag.Name)
	}
	if ctx.GlobalIsSet(LogLevelFlag.Name) {
		config.App.LogLevel = ctx.GlobalString(LogLevelFlag.Name)
	}
	if config.Storage.DataDir == "" {
		return nil, errors.New("config: no data directory")
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.App == nil || c.Storage == nil || c.Ledger == nil {
		return errors.New("config: missing section")
	}
	if c.Ledger.ExistentialDeposit == 0 {
		return balances.ErrInvalidExistentialDeposit
	}
	if _, err := system.ParseRefPolicy(c.Ledger.RefPolicy); err != nil {
		return err
	}
	switch c.Ledger.DustSink {
	case "", DustSinkBurn:
	case DustSinkAccount:
		if _, err := common.ParseAccountID(c.Ledger.DustAccount); err != nil {
			return errors.Wrap(err, "config: dust account")
		}
	default:
		return errors.Errorf("config: unknown dust sink %q", c.Ledger.DustSink)
	}
	_, err := c.GenesisAccounts()
	return err
}

func (c *Config) LogDir() string {
	if c.App.LogDir == "" || filepath.IsAbs(c.App.LogDir) {
		return c.App.LogDir
	}
	return filepath.Join(c.Storage.DataDir, c.App.LogDir)
}

func (c *Config) SystemConfig() (system.Config, error) {
	policy, err := system.ParseRefPolicy(c.Ledger.RefPolicy)
	if err != nil {
		return system.Config{}, err
	}
	return system.Config{Policy: policy}, nil
}

func (c *Config) BalancesConfig() (balances.Config, error) {
	cfg := balances.Config{
		ExistentialDeposit: account.Balance(c.Ledger.ExistentialDeposit),
		SlashReserved:      c.Ledger.SlashReserved,
		FrozenFunds:        c.Ledger.FrozenFunds,
	}
	if c.Ledger.DustSink == DustSinkAccount {
		who, err := common.ParseAccountID(c.Ledger.DustAccount)
		if err != nil {
			return cfg, errors.Wrap(err, "config: dust account")
		}
		cfg.DustRemoval = balances.DustToAccount{Who: who}
	}
	return cfg, nil
}

func (c *Config) GenesisAccounts() ([]balances.GenesisAccount, error) {
	accounts := make([]balances.GenesisAccount, 0, len(c.Genesis))
	for i, g := range c.Genesis {
		who, err := common.ParseAccountID(g.Account)
		if err != nil {
			return nil, errors.Wrapf(err, "config: genesis entry %d", i)
		}
		accounts = append(accounts, balances.GenesisAccount{
			Account:  who,
			Free:     account.Balance(g.Free),
			Reserved: account.Balance(g.Reserved),
		})
	}
	return accounts, nil
}
