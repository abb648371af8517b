package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/Snyder005/govisa/pkg/driver"
	"github.com/Snyder005/govisa/pkg/event"
	"github.com/Snyder005/govisa/pkg/session"
	"github.com/Snyder005/govisa/pkg/sim"
)

// Terminal handles the interactive command loop for visaterm.
type Terminal struct {
	sess *session.Session
	inst *sim.Instrument
	rl   *readline.Instance

	// srqReg tracks the service-request handler installed via
	// "events on".
	srqReg *event.Registration
}

// NewTerminal creates a new interactive terminal around an open
// session.
func NewTerminal(sess *session.Session, inst *sim.Instrument) (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "visa> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Terminal{
		sess: sess,
		inst: inst,
		rl:   rl,
	}, nil
}

// Run starts the interactive command loop.
func (t *Terminal) Run() error {
	defer t.rl.Close()

	t.printHelp()

	for {
		line, err := t.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(t.rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			t.printHelp()

		case "idn", "id":
			t.cmdIdn()

		case "send", "w":
			t.cmdSend(args, input)

		case "read", "r":
			t.cmdRead(args)

		case "query", "q":
			t.cmdQuery(args, input)

		case "timeout":
			t.cmdTimeout(args)

		case "attr":
			t.cmdAttr(args)

		case "clear":
			t.cmdClear()

		case "events":
			t.cmdEvents(args)

		case "srq":
			t.cmdSrq()

		case "discard":
			t.cmdDiscard()

		case "status":
			t.cmdStatus()

		case "quit", "exit":
			fmt.Fprintln(t.rl.Stdout(), "Exiting...")
			return nil

		default:
			fmt.Fprintf(t.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (t *Terminal) printHelp() {
	fmt.Fprintln(t.rl.Stdout(), `
Instrument Session Commands:
  Transfers:
    idn                - Query *IDN? and show the response
    send <command>     - Write a command, no response expected
    read [bytes]       - Read a response (default 1024 bytes)
    query <command>    - Write a command and read the response

  Session:
    timeout <duration> - Set the I/O timeout (e.g. 500ms, 2s)
    attr <name>        - Read an attribute (manufacturer, model, serial)
    clear              - Clear device buffers
    status             - Show session status

  Events:
    events on|off      - Install/remove a service-request handler
    srq                - Make the simulated device raise SRQ
    discard            - Discard pending service-request events

  General:
    help               - Show this help
    quit               - Exit`)
}

// cmdIdn queries the instrument identification.
func (t *Terminal) cmdIdn() {
	response, err := t.sess.Query("*IDN?")
	if err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(t.rl.Stdout(), response)
}

// cmdSend writes a raw command.
func (t *Terminal) cmdSend(args []string, input string) {
	if len(args) < 1 {
		fmt.Fprintln(t.rl.Stdout(), "Usage: send <command>")
		return
	}

	command := commandText(input)
	if err := t.sess.Write(command); err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(t.rl.Stdout(), "OK")
}

// cmdRead reads a response with an optional buffer size.
func (t *Terminal) cmdRead(args []string) {
	bufSize := session.DefaultBufferSize
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(t.rl.Stdout(), "Invalid buffer size: %s\n", args[0])
			return
		}
		bufSize = n
	}

	response, err := t.sess.ReadString(bufSize)
	if err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(t.rl.Stdout(), response)
}

// cmdQuery writes a command and reads the response.
func (t *Terminal) cmdQuery(args []string, input string) {
	if len(args) < 1 {
		fmt.Fprintln(t.rl.Stdout(), "Usage: query <command>")
		fmt.Fprintln(t.rl.Stdout(), "  Example: query MEAS:VOLT?")
		return
	}

	response, err := t.sess.Query(commandText(input))
	if err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(t.rl.Stdout(), response)
}

// cmdTimeout sets the session I/O timeout.
func (t *Terminal) cmdTimeout(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(t.rl.Stdout(), "Usage: timeout <duration>")
		fmt.Fprintln(t.rl.Stdout(), "  Example: timeout 500ms")
		return
	}

	d, err := time.ParseDuration(args[0])
	if err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Invalid duration: %v\n", err)
		return
	}
	if err := t.sess.SetTimeout(d); err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(t.rl.Stdout(), "Timeout set to %s\n", d)
}

// cmdAttr reads a named attribute.
func (t *Terminal) cmdAttr(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(t.rl.Stdout(), "Usage: attr <name>")
		fmt.Fprintln(t.rl.Stdout(), "  Names: manufacturer, model, serial, resource, class")
		return
	}

	var attr driver.Attribute
	switch strings.ToLower(args[0]) {
	case "manufacturer":
		attr = driver.AttrManufacturerName
	case "model":
		attr = driver.AttrModelName
	case "serial":
		attr = driver.AttrUSBSerialNumber
	case "resource":
		attr = driver.AttrResourceName
	case "class":
		attr = driver.AttrResourceClass
	default:
		fmt.Fprintf(t.rl.Stdout(), "Unknown attribute: %s\n", args[0])
		return
	}

	value, err := t.sess.GetAttribute(attr)
	if err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(t.rl.Stdout(), "%s = %s\n", attr, value)
}

// cmdClear clears the device buffers.
func (t *Terminal) cmdClear() {
	if err := t.sess.Clear(); err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(t.rl.Stdout(), "Buffers cleared")
}

// cmdEvents installs or removes the service-request handler.
func (t *Terminal) cmdEvents(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(t.rl.Stdout(), "Usage: events on|off")
		return
	}

	switch strings.ToLower(args[0]) {
	case "on":
		if t.srqReg != nil {
			fmt.Fprintln(t.rl.Stdout(), "Events already on")
			return
		}
		reg, err := t.sess.InstallHandler(driver.EventServiceRequest, t.onServiceRequest, nil)
		if err != nil {
			fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
			return
		}
		if err := t.sess.EnableEvent(driver.EventServiceRequest); err != nil {
			fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
			return
		}
		t.srqReg = reg
		fmt.Fprintln(t.rl.Stdout(), "Service-request events on")

	case "off":
		if t.srqReg == nil {
			fmt.Fprintln(t.rl.Stdout(), "Events already off")
			return
		}
		if err := t.sess.DisableEvent(driver.EventServiceRequest); err != nil {
			fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
			return
		}
		if err := t.sess.UninstallHandler(t.srqReg); err != nil {
			fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
			return
		}
		t.srqReg = nil
		fmt.Fprintln(t.rl.Stdout(), "Service-request events off")

	default:
		fmt.Fprintln(t.rl.Stdout(), "Usage: events on|off")
	}
}

// cmdSrq makes the simulated device raise a service request.
func (t *Terminal) cmdSrq() {
	invoked := t.inst.FireEvent(driver.EventServiceRequest)
	if invoked == 0 {
		pending := t.inst.PendingEvents(driver.EventServiceRequest)
		fmt.Fprintf(t.rl.Stdout(), "SRQ queued (%d pending, events off)\n", pending)
		return
	}
	fmt.Fprintf(t.rl.Stdout(), "SRQ delivered to %d handler(s)\n", invoked)
}

// cmdDiscard drops pending service-request events.
func (t *Terminal) cmdDiscard() {
	if err := t.sess.DiscardEvents(driver.EventServiceRequest); err != nil {
		fmt.Fprintf(t.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(t.rl.Stdout(), "Pending events discarded")
}

// cmdStatus shows the session status.
func (t *Terminal) cmdStatus() {
	fmt.Fprintln(t.rl.Stdout(), "\nSession Status")
	fmt.Fprintln(t.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(t.rl.Stdout(), "  Session ID:  %s\n", t.sess.ID())
	fmt.Fprintf(t.rl.Stdout(), "  Resource:    %s\n", t.sess.ResourceName())
	fmt.Fprintf(t.rl.Stdout(), "  Handlers:    %d\n", t.sess.Handlers().Count())

	events := "off"
	if t.srqReg != nil {
		events = "on"
	}
	fmt.Fprintf(t.rl.Stdout(), "  SRQ events:  %s\n", events)
	fmt.Fprintf(t.rl.Stdout(), "  SRQ pending: %d\n", t.inst.PendingEvents(driver.EventServiceRequest))
	fmt.Fprintln(t.rl.Stdout())
}

// onServiceRequest displays delivered service-request events.
func (t *Terminal) onServiceRequest(h driver.Handle, eventType driver.EventType, userData any) {
	fmt.Fprintf(t.rl.Stdout(), "\n[%s] %s\n",
		time.Now().Format("15:04:05"),
		eventType)
	t.rl.Refresh()
}

// commandText strips the leading terminal command word, preserving the
// rest of the line verbatim so instrument commands can contain spaces.
func commandText(input string) string {
	if i := strings.IndexAny(input, " \t"); i >= 0 {
		return strings.TrimSpace(input[i:])
	}
	return input
}
