// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io/ioutil"
	"math/big"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/metaspacelab/marketplace/meta"
	"github.com/metaspacelab/marketplace/registry"
)

// Config is the YAML node configuration: genesis holdings, listing
// policy and the admin account.
type Config struct {
	Admin string `yaml:"admin"`

	Genesis struct {
		Balances []struct {
			Address string `yaml:"address"`
			Token   uint32 `yaml:"token"`
			Amount  string `yaml:"amount"`
		} `yaml:"balances"`
		NFTs []struct {
			Owner   string `yaml:"owner"`
			ClassId uint64 `yaml:"classId"`
			TokenId uint64 `yaml:"tokenId"`
		} `yaml:"nfts"`
	} `yaml:"genesis"`

	Royalties []struct {
		ClassId   uint64 `yaml:"classId"`
		Recipient string `yaml:"recipient"`
		Percent   uint32 `yaml:"percent"`
	} `yaml:"royalties"`

	Metaverses []struct {
		Id          uint64   `yaml:"id"`
		Treasury    string   `yaml:"treasury"`
		ListingFee  uint32   `yaml:"listingFee"`
		Collections []uint64 `yaml:"collections"`
	} `yaml:"metaverses"`

	Continuum struct {
		SessionDuration uint32 `yaml:"sessionDuration"`
		InitialBid      string `yaml:"initialBid"`
		MaxX            uint32 `yaml:"maxX"`
		MaxY            uint32 `yaml:"maxY"`
	} `yaml:"continuum"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "read config")
	}
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, errors.WithMessage(err, "parse config")
	}
	return cfg, nil
}

func (cfg *Config) adminAddress() (meta.Address, error) {
	if cfg.Admin == "" {
		return meta.Address{}, nil
	}
	return meta.ParseAddress(cfg.Admin)
}

func (cfg *Config) royaltyTable() (map[uint64]registry.Royalty, error) {
	table := make(map[uint64]registry.Royalty, len(cfg.Royalties))
	for _, r := range cfg.Royalties {
		recipient, err := meta.ParseAddress(r.Recipient)
		if err != nil {
			return nil, errors.WithMessage(err, "royalty recipient")
		}
		table[r.ClassId] = registry.Royalty{Recipient: recipient, Percent: r.Percent}
	}
	return table, nil
}

func (cfg *Config) metaverseTable() (map[meta.MetaverseId]registry.MetaverseConfig, error) {
	table := make(map[meta.MetaverseId]registry.MetaverseConfig, len(cfg.Metaverses))
	for _, m := range cfg.Metaverses {
		treasury, err := meta.ParseAddress(m.Treasury)
		if err != nil {
			return nil, errors.WithMessage(err, "metaverse treasury")
		}
		table[meta.MetaverseId(m.Id)] = registry.MetaverseConfig{
			Treasury:    treasury,
			ListingFee:  m.ListingFee,
			Collections: m.Collections,
		}
	}
	return table, nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, errors.Errorf("bad amount %q", s)
	}
	return v, nil
}
