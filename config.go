package ofx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Connection describes an institution endpoint in a YAML connection file.
// Credentials are deliberately not part of the file; callers supply them
// when constructing a Client.
type Connection struct {
	Org        string `yaml:"org"`
	FID        string `yaml:"fid"`
	URL        string `yaml:"url"`
	AppID      string `yaml:"app_id,omitempty"`
	AppVersion string `yaml:"app_version,omitempty"`
	OFXVersion string `yaml:"ofx_version,omitempty"`
}

// LoadConnection reads a connection file from disk.
func LoadConnection(path string) (*Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading connection file: %w", err)
	}
	var conn Connection
	if err := yaml.Unmarshal(data, &conn); err != nil {
		return nil, fmt.Errorf("parsing connection file: %w", err)
	}
	return &conn, nil
}

// SaveConnection writes a connection file to disk.
func SaveConnection(path string, conn *Connection) error {
	data, err := yaml.Marshal(conn)
	if err != nil {
		return fmt.Errorf("marshaling connection file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing connection file: %w", err)
	}
	return nil
}

// NewClient builds a Client for this connection, applying any application
// identity overrides from the file.
func (cn *Connection) NewClient(username, password string) *Client {
	client := NewClient(FI{Org: cn.Org, FID: cn.FID, URL: cn.URL}, username, password)
	if cn.AppID != "" {
		client.AppID = cn.AppID
	}
	if cn.AppVersion != "" {
		client.AppVersion = cn.AppVersion
	}
	if cn.OFXVersion != "" {
		client.OFXVersion = cn.OFXVersion
	}
	return client
}
