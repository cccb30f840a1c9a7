package cli

import (
	"errors"
	"fmt"

	"github.com/getmockd/contractd/pkg/config"
	"github.com/getmockd/contractd/pkg/contract"
)

// discover expands args, or the configured contract locations when args is
// empty, into contract files.
func discover(args []string) ([]string, error) {
	locations := args
	if len(locations) == 0 {
		locations = cfg.Contracts
	}
	files, err := config.Discover(locations...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no contract files found")
	}
	return files, nil
}

func loader() *config.Loader {
	l := &config.Loader{Logger: logger}
	if cfg.Seed != 0 {
		l.Options = append(l.Options, contract.WithSeed(cfg.Seed))
	}
	return l
}

// loadContracts loads every contract found for args and fails on the
// first broken file.
func loadContracts(args []string) ([]*contract.Contract, error) {
	files, err := discover(args)
	if err != nil {
		return nil, err
	}
	return loader().LoadAll(files)
}

// selectContract picks the contract named name, or the only contract
// accepted by keep when name is empty.
func selectContract(contracts []*contract.Contract, name string, keep func(*contract.Contract) bool) (*contract.Contract, error) {
	var candidates []*contract.Contract
	for _, c := range contracts {
		if name != "" {
			if c.Name() == name {
				return c, nil
			}
			continue
		}
		if keep(c) {
			candidates = append(candidates, c)
		}
	}
	switch {
	case name != "":
		return nil, fmt.Errorf("no contract named %q", name)
	case len(candidates) == 0:
		return nil, errors.New("no applicable contract found")
	case len(candidates) > 1:
		return nil, fmt.Errorf("%d contracts apply, pick one with --name", len(candidates))
	}
	return candidates[0], nil
}
