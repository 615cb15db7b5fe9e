package dialer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock types ---

type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) Driver() Driver {
	args := m.Called()
	return args.Get(0).(Driver)
}

func (m *MockDialer) Dial(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockDialer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Tests ---

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	d := new(MockDialer)
	d.On("Driver").Return(DriverLog)

	assert.NoError(t, reg.Register(d))

	got, ok := reg.Get(DriverLog)
	assert.True(t, ok)
	assert.Equal(t, d, got)

	// Ensure a missing dialer returns false
	_, ok = reg.Get(DriverAT)
	assert.False(t, ok)

	d.AssertExpectations(t)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()

	d1 := new(MockDialer)
	d2 := new(MockDialer)
	d1.On("Driver").Return(DriverExec)
	d2.On("Driver").Return(DriverExec)

	assert.NoError(t, reg.Register(d1))
	assert.ErrorIs(t, reg.Register(d2), ErrAlreadyRegistered)

	got, _ := reg.Get(DriverExec)
	assert.Equal(t, d1, got)
}

func TestRegistry_Replace(t *testing.T) {
	reg := NewRegistry()

	old := new(MockDialer)
	next := new(MockDialer)
	old.On("Driver").Return(DriverAT)
	next.On("Driver").Return(DriverAT)
	old.On("Close").Return(nil).Once()

	assert.NoError(t, reg.Replace(old))
	assert.NoError(t, reg.Replace(next))

	got, _ := reg.Get(DriverAT)
	assert.Equal(t, next, got)

	old.AssertExpectations(t)
	next.AssertNotCalled(t, "Close")
}

func TestRegistry_Close(t *testing.T) {
	reg := NewRegistry()

	d1 := new(MockDialer)
	d2 := new(MockDialer)
	d1.On("Driver").Return(DriverLog)
	d2.On("Driver").Return(DriverAT)

	// Normal close
	d1.On("Close").Return(nil).Once()
	d2.On("Close").Return(nil).Once()

	assert.NoError(t, reg.Register(d1))
	assert.NoError(t, reg.Register(d2))

	assert.NoError(t, reg.Close())

	_, ok := reg.Get(DriverLog)
	assert.False(t, ok)

	d1.AssertExpectations(t)
	d2.AssertExpectations(t)
}

func TestRegistry_CloseErrorPropagation(t *testing.T) {
	reg := NewRegistry()

	d1 := new(MockDialer)
	d2 := new(MockDialer)

	d1.On("Driver").Return(DriverLog)
	d2.On("Driver").Return(DriverAT)

	d1.On("Close").Return(errors.New("close failed")).Once()
	d2.On("Close").Return(nil).Once()

	assert.NoError(t, reg.Register(d1))
	assert.NoError(t, reg.Register(d2))

	err := reg.Close()
	assert.EqualError(t, err, "close failed")

	d1.AssertExpectations(t)
	d2.AssertExpectations(t)
}
