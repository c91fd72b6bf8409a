package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var ErrNoDeployment = errors.New("no contract address configured and no deployment record found")

// Deployment is the record written once when the contract is deployed.
type Deployment struct {
	Address    string    `json:"address" validate:"required,eth_addr"`
	Network    string    `json:"network,omitempty"`
	ChainID    int64     `json:"chainId,omitempty"`
	DeployedAt time.Time `json:"deployedAt,omitempty"`
	TxHash     string    `json:"txHash,omitempty"`
}

// LoadDeployment reads and validates the deployment record at path.
func LoadDeployment(path string) (Deployment, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Deployment{}, fmt.Errorf("%w: %s", ErrNoDeployment, path)
	}
	if err != nil {
		return Deployment{}, err
	}

	var d Deployment
	if err := json.Unmarshal(data, &d); err != nil {
		return Deployment{}, fmt.Errorf("parse deployment record %s: %w", path, err)
	}
	if err := validate.Struct(d); err != nil {
		return Deployment{}, fmt.Errorf("invalid deployment record %s: %w", path, err)
	}
	return d, nil
}
