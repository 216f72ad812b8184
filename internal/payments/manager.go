package payments

import (
	"context"
	"fmt"
	"sync"
)

type PaymentManager struct {
	mu       sync.RWMutex
	gateways map[string]PaymentGateway
}

func NewPaymentManager() *PaymentManager {
	return &PaymentManager{gateways: make(map[string]PaymentGateway)}
}

func (m *PaymentManager) RegisterGateway(name string, gateway PaymentGateway) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gateways[name] = gateway
}

func (m *PaymentManager) gateway(name string) (PaymentGateway, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.gateways[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGatewayNotRegistered, name)
	}
	return g, nil
}

func (m *PaymentManager) InitiatePayment(ctx context.Context, method string, req PaymentRequest) (PaymentResponse, error) {
	gateway, err := m.gateway(method)
	if err != nil {
		return PaymentResponse{}, err
	}
	return gateway.InitiatePayment(ctx, req)
}

func (m *PaymentManager) VerifyPayment(ctx context.Context, method string, req PaymentVerifyRequest) (PaymentVerifyResponse, error) {
	gateway, err := m.gateway(method)
	if err != nil {
		return PaymentVerifyResponse{}, err
	}
	return gateway.VerifyPayment(ctx, req)
}

// Ready reports whether the named gateway can take calls. Gateways that know
// their own credentials say so through Configured.
func (m *PaymentManager) Ready(method string) error {
	gateway, err := m.gateway(method)
	if err != nil {
		return err
	}
	if c, ok := gateway.(interface{ Configured() bool }); ok && !c.Configured() {
		return ErrMissingCredentials
	}
	return nil
}
