package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/creator-hub/internal/domain/session"
	"github.com/stretchr/testify/mock"
)

type identityMock struct {
	mock.Mock
}

func newIdentityMock(t *testing.T) *identityMock {
	t.Helper()
	m := &identityMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *identityMock) SendOTP(ctx context.Context, req OTPRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *identityMock) VerifyOTP(ctx context.Context, email, code string) (session.Session, error) {
	ret := m.Called(ctx, email, code)
	return ret.Get(0).(session.Session), ret.Error(1)
}

func (m *identityMock) RefreshSession(ctx context.Context, refreshToken string) (session.Session, error) {
	ret := m.Called(ctx, refreshToken)
	return ret.Get(0).(session.Session), ret.Error(1)
}

func (m *identityMock) VerifyAccessToken(ctx context.Context, accessToken string) (session.Principal, error) {
	ret := m.Called(ctx, accessToken)
	return ret.Get(0).(session.Principal), ret.Error(1)
}

func (m *identityMock) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

type fixedIDs struct {
	id string
}

func (f fixedIDs) NewID() (string, error) {
	return f.id, nil
}

func strPtr(v string) *string {
	return &v
}
