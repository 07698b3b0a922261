package consul

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"
)

type Service struct {
	id      string
	address string
	port    int
}

func (s *Service) Id() string {
	return s.id
}

func (s *Service) Address() string {
	return s.address
}

func (s *Service) Port() int {
	return s.port
}

func (s *Service) Url() string {
	return fmt.Sprintf("http://%s:%d", s.address, s.port)
}

type Client interface {
	HealthServices(serviceName string) ([]*Service, error)
	RegisterService(serviceName, address string, port int) (string, error)
	DeregisterService(serviceId string) error
}

type client struct {
	cfg    *Config
	client *api.Client
}

func NewClient(cfg *Config) (Client, error) {
	cl, err := api.NewClient(cfg.toApiConfig())
	if err != nil {
		return nil, errors.Wrap(err, "create consul client")
	}
	return &client{cfg: cfg, client: cl}, nil
}

func ServiceId(serviceName, address string, port int) string {
	return fmt.Sprintf("%s-%s:%d", serviceName, address, port)
}

func (c *client) HealthServices(serviceName string) ([]*Service, error) {
	entries, _, err := c.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "query healthy %s services", serviceName)
	}
	services := make([]*Service, 0, len(entries))
	for _, e := range entries {
		services = append(services, &Service{
			id:      e.Service.ID,
			address: e.Service.Address,
			port:    e.Service.Port,
		})
	}
	return services, nil
}

// RegisterService registers the instance with an HTTP health check and returns its id.
func (c *client) RegisterService(serviceName, address string, port int) (string, error) {
	id := ServiceId(serviceName, address, port)
	reg := &api.AgentServiceRegistration{
		ID:      id,
		Name:    serviceName,
		Address: address,
		Port:    port,
		Check:   c.cfg.Health.toApiCheck(fmt.Sprintf("http://%s:%d", address, port)),
	}
	if err := c.client.Agent().ServiceRegister(reg); err != nil {
		return "", errors.Wrapf(err, "register %s", id)
	}
	return id, nil
}

func (c *client) DeregisterService(serviceId string) error {
	if err := c.client.Agent().ServiceDeregister(serviceId); err != nil {
		return errors.Wrapf(err, "deregister %s", serviceId)
	}
	return nil
}
