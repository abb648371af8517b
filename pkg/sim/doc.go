// Package sim provides an in-memory simulated instrument for tests
// and demos.
//
// Instrument implements both driver.Driver and driver.Opener: it plays
// the roles of the resource manager (for exactly one resource) and of
// the device behind it. Commands are answered from a scripted
// command/response table, identification attributes come from the
// configured identity, and events are delivered to installed handlers
// the way a native driver would, on the goroutine that fires them.
//
//	inst := sim.New("TCPIP::192.0.2.10::INSTR",
//	    sim.WithIdentity("Acme", "WG-25", "A1B2C3"),
//	    sim.WithResponse("MEAS:VOLT?", "1.042\n"),
//	)
//	h, st := inst.Open("TCPIP::192.0.2.10::INSTR")
//
// Fault injection (one-shot per call site) covers the failure modes a
// real driver can produce: an arbitrary failure status for a named
// native operation, a short write, and a successful zero-byte read.
//
// An Instrument simulates one device; it is not a resource manager and
// performs no discovery.
package sim
