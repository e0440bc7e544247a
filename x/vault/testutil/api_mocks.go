package testutil

import (
	"reflect"

	"github.com/btcq-org/qvault/common"
	"github.com/golang/mock/gomock"
)

type MockAPIRecorder struct {
	mock *MockAPI
}

// MockAPI is a mock of common.API.
type MockAPI struct {
	ctrl     *gomock.Controller
	recorder *MockAPIRecorder
}

var _ common.API = &MockAPI{}

func NewMockAPI(ctrl *gomock.Controller) *MockAPI {
	mock := &MockAPI{ctrl: ctrl}
	mock.recorder = &MockAPIRecorder{mock: mock}
	return mock
}

func (m *MockAPI) EXPECT() *MockAPIRecorder {
	return m.recorder
}

// AddrValidate implements common.API.
func (m *MockAPI) AddrValidate(human string) (common.Address, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddrValidate", human)
	ret0, _ := ret[0].(common.Address)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAPIRecorder) AddrValidate(human any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddrValidate", reflect.TypeOf((*MockAPI)(nil).AddrValidate), human)
}

// AddrCanonicalize implements common.API.
func (m *MockAPI) AddrCanonicalize(human string) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddrCanonicalize", human)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAPIRecorder) AddrCanonicalize(human any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddrCanonicalize", reflect.TypeOf((*MockAPI)(nil).AddrCanonicalize), human)
}

// AddrHumanize implements common.API.
func (m *MockAPI) AddrHumanize(canonical []byte) (common.Address, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddrHumanize", canonical)
	ret0, _ := ret[0].(common.Address)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAPIRecorder) AddrHumanize(canonical any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddrHumanize", reflect.TypeOf((*MockAPI)(nil).AddrHumanize), canonical)
}
