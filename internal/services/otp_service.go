package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/Dilshan221/bakery-management/domain"
)

// OTPServiceImpl implements domain.OTPService against the challenge embedded
// in the employee record.
type OTPServiceImpl struct {
	employeeRepo    domain.EmployeeRepository
	notificationSvc domain.NotificationService
	config          OTPConfig
	now             func() time.Time
}

type OTPConfig struct {
	TTL         time.Duration
	MaxAttempts int
	// LiveDispatch selects the silent SMS path. It is true only when the
	// production signal is set AND provider credentials are present; the
	// code-in-response path is unreachable while it holds.
	LiveDispatch bool
}

// minCodeLength is the minimum accepted length of a submitted code after
// trimming, checked independently of whether a challenge is pending.
const minCodeLength = 4

// NewOTPService creates a new employee phone verification service
func NewOTPService(employeeRepo domain.EmployeeRepository, notificationSvc domain.NotificationService, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
		config:          config,
		now:             time.Now,
	}
}

// Issue implements domain.OTPService. A fresh challenge always replaces any
// prior one. The challenge is persisted before dispatch; a dispatch failure
// leaves a valid, usable challenge behind.
func (s *OTPServiceImpl) Issue(ctx context.Context, employeeID uint, phone string) (*domain.OTPIssueResult, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	phoneToUse := strings.TrimSpace(phone)
	if phoneToUse == "" {
		phoneToUse = strings.TrimSpace(emp.Phone)
	}
	if phoneToUse == "" {
		return nil, domain.ErrPhoneRequired
	}

	// Adopting a phone always resets the verified flag.
	if emp.Phone == "" {
		if err := s.employeeRepo.AdoptPhone(ctx, employeeID, phoneToUse); err != nil {
			return nil, err
		}
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	challenge := domain.OTPChallenge{
		Code:      code,
		ExpiresAt: s.now().Add(s.config.TTL),
		Attempts:  0,
	}
	if err := s.employeeRepo.StoreChallenge(ctx, employeeID, challenge); err != nil {
		return nil, err
	}

	if s.config.LiveDispatch {
		message := fmt.Sprintf("Your verification code is: %s", code)
		if err := s.notificationSvc.SendSMS(phoneToUse, message); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSMSDispatch, err)
		}
		return &domain.OTPIssueResult{Phone: phoneToUse, Delivered: true}, nil
	}

	log.Printf("[DEV OTP] %s -> %s", code, phoneToUse)
	return &domain.OTPIssueResult{Phone: phoneToUse, DevCode: code}, nil
}

// Verify implements domain.OTPService. Transition rules are evaluated in
// order: pending check, code-length check, expiry, attempt ceiling, string
// compare. The attempt that breaches the ceiling is never compared.
func (s *OTPServiceImpl) Verify(ctx context.Context, employeeID uint, code string) error {
	emp, err := s.employeeRepo.FindByIDWithChallenge(ctx, employeeID)
	if err != nil {
		return err
	}

	if emp.Challenge == nil {
		return domain.ErrOTPNotPending
	}

	submitted := strings.TrimSpace(code)
	if len(submitted) < minCodeLength {
		return domain.ErrOTPInvalid
	}

	ch := emp.Challenge
	if !s.now().Before(ch.ExpiresAt) {
		if err := s.employeeRepo.ClearChallenge(ctx, employeeID, false); err != nil {
			return err
		}
		return domain.ErrOTPExpired
	}

	nextAttempts := ch.Attempts + 1
	if nextAttempts > s.config.MaxAttempts {
		if err := s.employeeRepo.ClearChallenge(ctx, employeeID, false); err != nil {
			return err
		}
		return domain.ErrOTPMaxAttempts
	}

	if submitted != ch.Code {
		swapped, err := s.employeeRepo.BumpChallengeAttempts(ctx, employeeID, ch.Code, ch.Attempts)
		if err != nil {
			return err
		}
		if !swapped {
			// Challenge was replaced or consumed concurrently.
			return domain.ErrOTPNotPending
		}
		return domain.ErrOTPInvalid
	}

	return s.employeeRepo.ClearChallenge(ctx, employeeID, true)
}

// generateCode produces a uniformly distributed 6-digit code in
// [100000, 999999], never zero-padded.
func (s *OTPServiceImpl) generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
