package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Snyder005/govisa/pkg/driver"
)

const simResource = "USB0::0x1234::0x5678::SN0042::INSTR"

func openInstrument(t *testing.T, opts ...Option) (*Instrument, driver.Handle) {
	t.Helper()
	inst := New(simResource, opts...)
	h, st := inst.Open(simResource)
	require.True(t, st.IsSuccess(), "Open status = %v", st)
	return inst, h
}

func TestOpen(t *testing.T) {
	inst := New(simResource)

	h, st := inst.Open(simResource)
	require.Equal(t, driver.StatusSuccess, st)
	assert.NotZero(t, h)
}

func TestOpenUnknownResource(t *testing.T) {
	inst := New(simResource)

	_, st := inst.Open("GPIB0::9::INSTR")
	assert.Equal(t, driver.StatusErrorResourceNotFound, st)
}

func TestOpenWhileLocked(t *testing.T) {
	inst, _ := openInstrument(t)

	_, st := inst.Open(simResource)
	assert.Equal(t, driver.StatusErrorResourceLocked, st)
}

func TestReopenAfterClose(t *testing.T) {
	inst, h := openInstrument(t)
	require.Equal(t, driver.StatusSuccess, inst.Close(h))

	h2, st := inst.Open(simResource)
	require.Equal(t, driver.StatusSuccess, st)
	assert.NotEqual(t, h, h2, "handles are not reused")
}

func TestIdentificationQuery(t *testing.T) {
	inst, h := openInstrument(t, WithIdentity("Acme Instruments", "WG-25", "SN0042"))

	command := []byte("*IDN?")
	count, st := inst.Write(h, command)
	require.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, uint32(len(command)), count)

	buf := make([]byte, 1024)
	count, st = inst.Read(h, buf)
	require.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, "Acme Instruments,WG-25,SN0042,1.0\n", string(buf[:count]))
}

func TestScriptedResponse(t *testing.T) {
	inst, h := openInstrument(t, WithResponse("MEAS:VOLT?", "+1.042E+00\n"))

	_, st := inst.Write(h, []byte("MEAS:VOLT?"))
	require.Equal(t, driver.StatusSuccess, st)

	buf := make([]byte, 64)
	count, st := inst.Read(h, buf)
	require.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, "+1.042E+00\n", string(buf[:count]))
}

func TestResponderSeesTrimmedCommand(t *testing.T) {
	var gotCommand string
	inst, h := openInstrument(t, WithResponder("SYST:ERR?", func(cmd string) ([]byte, driver.Status) {
		gotCommand = cmd
		return []byte("+0,\"No error\"\n"), driver.StatusSuccess
	}))

	_, st := inst.Write(h, []byte("SYST:ERR?\n"))
	require.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, "SYST:ERR?", gotCommand)
}

func TestFallbackResponder(t *testing.T) {
	inst, h := openInstrument(t, WithFallback(func(cmd string) ([]byte, driver.Status) {
		return []byte("echo:" + cmd + "\n"), driver.StatusSuccess
	}))

	_, st := inst.Write(h, []byte("FREQ 1000"))
	require.Equal(t, driver.StatusSuccess, st)

	buf := make([]byte, 64)
	count, st := inst.Read(h, buf)
	require.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, "echo:FREQ 1000\n", string(buf[:count]))
}

func TestUnscriptedCommandQueuesNothing(t *testing.T) {
	inst, h := openInstrument(t)

	count, st := inst.Write(h, []byte("FREQ 1000"))
	require.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, uint32(9), count)

	buf := make([]byte, 64)
	_, st = inst.Read(h, buf)
	assert.Equal(t, driver.StatusErrorTimeout, st)
}

func TestReadTimeoutWhenSilent(t *testing.T) {
	inst, h := openInstrument(t)

	buf := make([]byte, 64)
	count, st := inst.Read(h, buf)
	assert.Equal(t, driver.StatusErrorTimeout, st)
	assert.Zero(t, count)
}

func TestReadMaxCount(t *testing.T) {
	inst, h := openInstrument(t, WithResponse("CURV?", "0123456789"))

	_, st := inst.Write(h, []byte("CURV?"))
	require.Equal(t, driver.StatusSuccess, st)

	// First read fills a 4-byte buffer with data left over.
	buf := make([]byte, 4)
	count, st := inst.Read(h, buf)
	assert.Equal(t, driver.StatusSuccessMaxCount, st)
	assert.Equal(t, "0123", string(buf[:count]))

	// Remaining bytes arrive on the next read with a plain success.
	buf = make([]byte, 64)
	count, st = inst.Read(h, buf)
	assert.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, "456789", string(buf[:count]))
}

func TestReadExactFill(t *testing.T) {
	// A response that exactly fills the buffer with nothing left over
	// is a plain success, not MAX_CNT.
	inst, h := openInstrument(t, WithResponse("CURV?", "0123"))

	_, st := inst.Write(h, []byte("CURV?"))
	require.Equal(t, driver.StatusSuccess, st)

	buf := make([]byte, 4)
	count, st := inst.Read(h, buf)
	assert.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, uint32(4), count)
}

func TestClearDropsPending(t *testing.T) {
	inst, h := openInstrument(t)

	_, st := inst.Write(h, []byte("*IDN?"))
	require.Equal(t, driver.StatusSuccess, st)

	require.Equal(t, driver.StatusSuccess, inst.Clear(h))

	buf := make([]byte, 64)
	_, st = inst.Read(h, buf)
	assert.Equal(t, driver.StatusErrorTimeout, st)
}

func TestClosedHandleRejected(t *testing.T) {
	inst, h := openInstrument(t)
	require.Equal(t, driver.StatusSuccess, inst.Close(h))

	_, st := inst.Write(h, []byte("*IDN?"))
	assert.Equal(t, driver.StatusErrorInvalidObject, st)

	buf := make([]byte, 16)
	_, st = inst.Read(h, buf)
	assert.Equal(t, driver.StatusErrorInvalidObject, st)

	assert.Equal(t, driver.StatusErrorInvalidObject, inst.Clear(h))
	assert.Equal(t, driver.StatusErrorInvalidObject, inst.Close(h))
}

func TestWrongHandleRejected(t *testing.T) {
	inst, h := openInstrument(t)

	_, st := inst.Write(h+1, []byte("*IDN?"))
	assert.Equal(t, driver.StatusErrorInvalidObject, st)
}

func TestSetTimeoutAttribute(t *testing.T) {
	inst, h := openInstrument(t)

	require.Equal(t, driver.StatusSuccess, inst.SetAttribute(h, driver.AttrTimeoutValue, 5000))

	buf := make([]byte, 16)
	require.Equal(t, driver.StatusSuccess, inst.GetAttribute(h, driver.AttrTimeoutValue, buf))
	assert.Equal(t, "5000", attrString(buf))
}

func TestIdentityAttributesReadOnly(t *testing.T) {
	inst, h := openInstrument(t)

	assert.Equal(t, driver.StatusErrorAttributeReadOnly, inst.SetAttribute(h, driver.AttrModelName, 1))
	assert.Equal(t, driver.StatusErrorAttributeReadOnly, inst.SetAttribute(h, driver.AttrResourceName, 1))
}

func TestUnsupportedAttribute(t *testing.T) {
	inst, h := openInstrument(t)

	assert.Equal(t, driver.StatusErrorUnsupportedAttribute, inst.SetAttribute(h, driver.AttrTermChar, 10))

	buf := make([]byte, 16)
	assert.Equal(t, driver.StatusErrorUnsupportedAttribute, inst.GetAttribute(h, driver.AttrTermChar, buf))
}

func TestGetAttributeValues(t *testing.T) {
	inst, h := openInstrument(t, WithIdentity("Acme Instruments", "WG-25", "SN0042"))

	tests := []struct {
		attr driver.Attribute
		want string
	}{
		{driver.AttrManufacturerName, "Acme Instruments"},
		{driver.AttrModelName, "WG-25"},
		{driver.AttrUSBSerialNumber, "SN0042"},
		{driver.AttrResourceName, simResource},
		{driver.AttrResourceClass, "INSTR"},
	}
	for _, tt := range tests {
		t.Run(tt.attr.String(), func(t *testing.T) {
			buf := make([]byte, 256)
			require.Equal(t, driver.StatusSuccess, inst.GetAttribute(h, tt.attr, buf))
			assert.Equal(t, tt.want, attrString(buf))
		})
	}
}

func TestFireEventInvokesHandlers(t *testing.T) {
	inst, h := openInstrument(t)

	var calls []driver.EventType
	cb := func(gotH driver.Handle, et driver.EventType, ud any) {
		assert.Equal(t, h, gotH)
		assert.Equal(t, "ctx", ud)
		calls = append(calls, et)
	}

	require.Equal(t, driver.StatusSuccess, inst.InstallHandler(h, driver.EventServiceRequest, cb, "ctx"))
	require.Equal(t, driver.StatusSuccess, inst.EnableEvent(h, driver.EventServiceRequest, driver.MechanismHandler))

	invoked := inst.FireEvent(driver.EventServiceRequest)
	assert.Equal(t, 1, invoked)
	assert.Equal(t, []driver.EventType{driver.EventServiceRequest}, calls)
}

func TestFireEventQueuesWhenDisabled(t *testing.T) {
	inst, h := openInstrument(t)

	called := false
	cb := func(driver.Handle, driver.EventType, any) { called = true }
	require.Equal(t, driver.StatusSuccess, inst.InstallHandler(h, driver.EventServiceRequest, cb, nil))

	invoked := inst.FireEvent(driver.EventServiceRequest)
	assert.Zero(t, invoked)
	assert.False(t, called)
	assert.Equal(t, 1, inst.PendingEvents(driver.EventServiceRequest))
}

func TestFireEventFiltersByType(t *testing.T) {
	inst, h := openInstrument(t)

	srqCalls := 0
	cb := func(driver.Handle, driver.EventType, any) { srqCalls++ }
	require.Equal(t, driver.StatusSuccess, inst.InstallHandler(h, driver.EventServiceRequest, cb, nil))
	require.Equal(t, driver.StatusSuccess, inst.EnableEvent(h, driver.EventServiceRequest, driver.MechanismHandler))
	require.Equal(t, driver.StatusSuccess, inst.EnableEvent(h, driver.EventClear, driver.MechanismHandler))

	inst.FireEvent(driver.EventClear)
	assert.Zero(t, srqCalls)

	inst.FireEvent(driver.EventServiceRequest)
	assert.Equal(t, 1, srqCalls)
}

func TestEnableEventRejectsQueueMechanism(t *testing.T) {
	inst, h := openInstrument(t)

	st := inst.EnableEvent(h, driver.EventServiceRequest, driver.MechanismQueue)
	assert.Equal(t, driver.StatusErrorInvalidMechanism, st)
}

func TestEnableEventAlreadyEnabled(t *testing.T) {
	inst, h := openInstrument(t)

	require.Equal(t, driver.StatusSuccess, inst.EnableEvent(h, driver.EventServiceRequest, driver.MechanismHandler))
	st := inst.EnableEvent(h, driver.EventServiceRequest, driver.MechanismHandler)
	assert.Equal(t, driver.StatusSuccessEventEnabled, st)
}

func TestDisableEvent(t *testing.T) {
	inst, h := openInstrument(t)

	// Disabling an event that was never enabled is a warning.
	st := inst.DisableEvent(h, driver.EventServiceRequest, driver.MechanismHandler)
	assert.Equal(t, driver.StatusSuccessEventDisabled, st)

	require.Equal(t, driver.StatusSuccess, inst.EnableEvent(h, driver.EventServiceRequest, driver.MechanismHandler))
	st = inst.DisableEvent(h, driver.EventServiceRequest, driver.MechanismHandler)
	assert.Equal(t, driver.StatusSuccess, st)

	// Handlers stay installed; the event simply queues again.
	inst.FireEvent(driver.EventServiceRequest)
	assert.Equal(t, 1, inst.PendingEvents(driver.EventServiceRequest))
}

func TestDiscardEvents(t *testing.T) {
	inst, h := openInstrument(t)

	st := inst.DiscardEvents(h, driver.EventServiceRequest, driver.MechanismAll)
	assert.Equal(t, driver.StatusSuccessQueueEmpty, st)

	inst.FireEvent(driver.EventServiceRequest)
	inst.FireEvent(driver.EventServiceRequest)
	require.Equal(t, 2, inst.PendingEvents(driver.EventServiceRequest))

	st = inst.DiscardEvents(h, driver.EventServiceRequest, driver.MechanismAll)
	assert.Equal(t, driver.StatusSuccess, st)
	assert.Zero(t, inst.PendingEvents(driver.EventServiceRequest))
}

func TestUninstallHandlerExactMatch(t *testing.T) {
	inst, h := openInstrument(t)

	cb := func(driver.Handle, driver.EventType, any) {}
	require.Equal(t, driver.StatusSuccess, inst.InstallHandler(h, driver.EventServiceRequest, cb, "a"))

	// Same callback, different user data: no match.
	st := inst.UninstallHandler(h, driver.EventServiceRequest, cb, "b")
	assert.Equal(t, driver.StatusErrorInvalidHandlerRef, st)

	// Same callback, different event type: no match.
	st = inst.UninstallHandler(h, driver.EventClear, cb, "a")
	assert.Equal(t, driver.StatusErrorInvalidHandlerRef, st)

	// Exact triple: removed.
	st = inst.UninstallHandler(h, driver.EventServiceRequest, cb, "a")
	assert.Equal(t, driver.StatusSuccess, st)

	// Already removed.
	st = inst.UninstallHandler(h, driver.EventServiceRequest, cb, "a")
	assert.Equal(t, driver.StatusErrorInvalidHandlerRef, st)
}

func TestUninstallNilHandler(t *testing.T) {
	inst, h := openInstrument(t)

	assert.Equal(t, driver.StatusErrorInvalidHandlerRef, inst.InstallHandler(h, driver.EventServiceRequest, nil, nil))
	assert.Equal(t, driver.StatusErrorInvalidHandlerRef, inst.UninstallHandler(h, driver.EventServiceRequest, nil, nil))
}

func TestInjectStatus(t *testing.T) {
	inst, h := openInstrument(t)

	inst.InjectStatus("viRead", driver.StatusErrorConnectionLost)

	buf := make([]byte, 16)
	_, st := inst.Read(h, buf)
	assert.Equal(t, driver.StatusErrorConnectionLost, st)

	// One-shot: the next read behaves normally again.
	_, st = inst.Read(h, buf)
	assert.Equal(t, driver.StatusErrorTimeout, st)
}

func TestInjectShortWrite(t *testing.T) {
	inst, h := openInstrument(t)

	inst.InjectShortWrite(3)
	count, st := inst.Write(h, []byte("*IDN?"))
	assert.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, uint32(3), count)

	count, st = inst.Write(h, []byte("*IDN?"))
	assert.Equal(t, driver.StatusSuccess, st)
	assert.Equal(t, uint32(5), count)
}

func TestInjectEmptyRead(t *testing.T) {
	inst, h := openInstrument(t)

	inst.InjectEmptyRead()
	buf := make([]byte, 16)
	count, st := inst.Read(h, buf)
	assert.Equal(t, driver.StatusSuccess, st)
	assert.Zero(t, count)
}

// attrString decodes a NUL-terminated attribute buffer.
func attrString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
