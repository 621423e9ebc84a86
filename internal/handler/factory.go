package handler

import (
	"fmt"

	"github.com/OpenNSW/formflow/internal/config"
	"github.com/OpenNSW/formflow/internal/endpoints"
)

// EndpointResolver looks up the workflow URL for a handler
type EndpointResolver interface {
	Resolve(name string) (string, error)
}

// Factory creates handler instances from a handler type
type Factory interface {
	Build(t Type) (Handler, error)
}

// factory implements Factory interface
type factory struct {
	endpoints EndpointResolver
	deps      Deps
	config    config.HandlersConfig
}

// NewFactory creates a new Factory instance
func NewFactory(resolver EndpointResolver, deps Deps, cfg config.HandlersConfig) Factory {
	return &factory{
		endpoints: resolver,
		deps:      deps,
		config:    cfg,
	}
}

func (f *factory) Build(t Type) (Handler, error) {
	switch t {
	case TypeOrder:
		url, err := f.endpoints.Resolve(endpoints.NameOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve order endpoint: %w", err)
		}
		return NewOrderHandler(url, f.deps, f.config.OrderNotifyPending), nil
	case TypeInventory:
		url, err := f.endpoints.Resolve(endpoints.NameInventory)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve inventory endpoint: %w", err)
		}
		return NewInventoryHandler(url, f.deps, f.config.InventoryID, f.config.InventoryNotify), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}
