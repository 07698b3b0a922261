package consul

import "github.com/hashicorp/consul/api"

type HealthConfig struct {
	Interval string `kdl:"interval"`
	Timeout  string `kdl:"timeout"`
	Http     string `kdl:"http"`
}

func (c *HealthConfig) toApiCheck(baseUrl string) *api.AgentServiceCheck {
	if c == nil {
		return nil
	}
	return &api.AgentServiceCheck{
		HTTP:     baseUrl + c.Http,
		Timeout:  c.Timeout,
		Interval: c.Interval,
	}
}

type Config struct {
	Address string        `kdl:"address"`
	Health  *HealthConfig `kdl:"health"`
}

func (c *Config) toApiConfig() *api.Config {
	cfg := api.DefaultConfig()
	cfg.Address = c.Address
	return cfg
}
