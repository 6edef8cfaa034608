package connectors

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/domain/interfaces"
	"github.com/wanderdata/wanderdata/core/infrastructure/logging"
)

// Factory creates a connector for an adapter
type Factory func(ctx context.Context, adapter *domain.Adapter) (interfaces.Connector, error)

// ConnectorManager implements the ConnectorManager interface
type ConnectorManager struct {
	connectors map[string]interfaces.Connector
	factory    Factory
	mu         sync.RWMutex
}

// NewConnectorManager creates a new ConnectorManager instance
func NewConnectorManager() *ConnectorManager {
	return NewConnectorManagerWithFactory(NewConnector)
}

// NewConnectorManagerWithFactory creates a manager that builds connectors with factory
func NewConnectorManagerWithFactory(factory Factory) *ConnectorManager {
	return &ConnectorManager{
		connectors: make(map[string]interfaces.Connector),
		factory:    factory,
	}
}

// InitializeAll creates all connectors in parallel from the given adapters.
// If any connector fails, the ones already opened are closed.
func (m *ConnectorManager) InitializeAll(ctx context.Context, adapters []*domain.Adapter) error {
	if len(adapters) == 0 {
		return nil
	}

	log := logging.New("connector")
	log.Debugf("Initializing %d adapter(s)", len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	for _, adapter := range adapters {
		g.Go(func() error {
			connLog := logging.New(fmt.Sprintf("connector:%s", adapter.Name))
			connLog.Debugf("Initializing %s connector", adapter.Connector)

			conn, err := m.factory(gctx, adapter)
			if err != nil {
				connLog.Errorf("Failed to create connector: %v", err)
				return fmt.Errorf("adapter '%s': %w", adapter.Name, err)
			}

			m.mu.Lock()
			m.connectors[adapter.Name] = conn
			m.mu.Unlock()

			connLog.Debugf("Connector initialized successfully")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Errorf("Initialization failed, closing all connectors: %v", err)
		if closeErr := m.CloseAll(); closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}

	log.Debugf("All connectors initialized successfully")
	return nil
}

// CloseAll closes all connectors in parallel
func (m *ConnectorManager) CloseAll() error {
	m.mu.Lock()
	open := m.connectors
	m.connectors = make(map[string]interfaces.Connector)
	m.mu.Unlock()

	if len(open) == 0 {
		return nil
	}

	log := logging.New("connector")
	log.Debugf("Closing %d connector(s)", len(open))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for name, conn := range open {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := conn.Close(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("connector '%s': %w", name, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Get returns a connector by name
func (m *ConnectorManager) Get(name string) (interfaces.Connector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conn, exists := m.connectors[name]
	return conn, exists
}

// Count returns the number of managed connectors
func (m *ConnectorManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connectors)
}
