package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	ErrSavePhoneCommandIsNotConstructed = errors.New(
		"SavePhoneCommand must be created via NewSavePhoneCommand constructor",
	)
	ErrConfirmPhoneCommandIsNotConstructed = errors.New(
		"ConfirmPhoneCommand must be created via NewConfirmPhoneCommand constructor",
	)
	ErrSaveAddressCommandIsNotConstructed = errors.New(
		"SaveAddressCommand must be created via NewSaveAddressCommand constructor",
	)

	ErrAddressIsRequired = errs.NewRejectionError("Address is required.")
)

// PhoneIsInvalid is the rejection for a phone number that does not normalize.
func PhoneIsInvalid(raw string) *errs.RejectionError {
	return errs.NewRejectionError(fmt.Sprintf("Phone number '%s' is not valid.", strings.TrimSpace(raw)))
}

// SavePhoneCommand stores the caller's phone number, unconfirmed.
type SavePhoneCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	phone     kernel.Phone

	guard guard.ConstructorGuard
}

func NewSavePhoneCommand(sessionID, raw string) (SavePhoneCommand, error) {
	phone, ok := kernel.NormalizePhone(raw)
	if !ok {
		return SavePhoneCommand{}, PhoneIsInvalid(raw)
	}
	return SavePhoneCommand{
		sessionID: sessionID,
		phone:     phone,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SavePhoneCommand) Validate() error {
	return c.guard.Validate(ErrSavePhoneCommandIsNotConstructed)
}

func (c SavePhoneCommand) SessionID() string {
	return c.sessionID
}

func (c SavePhoneCommand) Phone() kernel.Phone {
	return c.phone
}

// ConfirmPhoneCommand records whether the caller agreed the read-back number.
type ConfirmPhoneCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	confirmed bool

	guard guard.ConstructorGuard
}

func NewConfirmPhoneCommand(sessionID string, confirmed bool) ConfirmPhoneCommand {
	return ConfirmPhoneCommand{
		sessionID: sessionID,
		confirmed: confirmed,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c ConfirmPhoneCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPhoneCommandIsNotConstructed)
}

func (c ConfirmPhoneCommand) SessionID() string {
	return c.sessionID
}

func (c ConfirmPhoneCommand) Confirmed() bool {
	return c.confirmed
}

// SaveAddressCommand stores the delivery address.
type SaveAddressCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	address   string
	confirmed bool

	guard guard.ConstructorGuard
}

func NewSaveAddressCommand(sessionID, address string, confirmed bool) (SaveAddressCommand, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return SaveAddressCommand{}, ErrAddressIsRequired
	}
	return SaveAddressCommand{
		sessionID: sessionID,
		address:   address,
		confirmed: confirmed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SaveAddressCommand) Validate() error {
	return c.guard.Validate(ErrSaveAddressCommandIsNotConstructed)
}

func (c SaveAddressCommand) SessionID() string {
	return c.sessionID
}

func (c SaveAddressCommand) Address() string {
	return c.address
}

func (c SaveAddressCommand) Confirmed() bool {
	return c.confirmed
}

// ContactResult is the contact detail held by the session after a command.
type ContactResult struct {
	Phone     string
	Address   string
	Confirmed bool
}

// ContactCommandHandler handles the phone and address commands, which only
// touch session state.
type ContactCommandHandler struct {
	sessions SessionProvider
}

func NewContactCommandHandler(sessions SessionProvider) ContactCommandHandler {
	return ContactCommandHandler{sessions: sessions}
}

func (h ContactCommandHandler) SavePhone(_ context.Context, cmd SavePhoneCommand) (ContactResult, error) {
	if err := cmd.Validate(); err != nil {
		return ContactResult{}, err
	}

	var result ContactResult
	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		if st.Phone != cmd.Phone() {
			st.PhoneConfirmed = false
		}
		st.Phone = cmd.Phone()
		result = ContactResult{Phone: st.Phone.String(), Confirmed: st.PhoneConfirmed}
		return nil
	})
	return result, err
}

// ConfirmPhone reports Confirmed only when the caller confirmed and a phone
// number is on file.
func (h ContactCommandHandler) ConfirmPhone(_ context.Context, cmd ConfirmPhoneCommand) (ContactResult, error) {
	if err := cmd.Validate(); err != nil {
		return ContactResult{}, err
	}

	var result ContactResult
	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		st.PhoneConfirmed = cmd.Confirmed() && !st.Phone.IsZero()
		result = ContactResult{Phone: st.Phone.String(), Confirmed: st.PhoneConfirmed}
		return nil
	})
	return result, err
}

func (h ContactCommandHandler) SaveAddress(_ context.Context, cmd SaveAddressCommand) (ContactResult, error) {
	if err := cmd.Validate(); err != nil {
		return ContactResult{}, err
	}

	var result ContactResult
	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		st.Address = cmd.Address()
		st.AddressConfirmed = cmd.Confirmed()
		result = ContactResult{Address: st.Address, Confirmed: st.AddressConfirmed}
		return nil
	})
	return result, err
}
