// Package agent contains the orchestration loop at the core of Reactant.
//
// The Agent owns the two pieces of state that live across turns: the
// append-only conversation history (seeded with the fixed system
// instruction) and the single scaffolding session. Each user turn takes
// exactly one of three paths:
//
//   - Control words ("exit", "new") are intercepted locally and never reach
//     the LLM.
//   - While a scaffolding session is active, the turn advances exactly one
//     field of the guided flow; when the last field lands, the synthesized
//     command is executed through the tool registry. Scaffolding and
//     LLM-driven dialogue are mutually exclusive per turn.
//   - Everything else is appended to history and sent to the LLM, whose
//     response is parsed into a Decision and, for TOOLS mode, dispatched.
//
// Front ends supply a Callbacks value so the same processing logic can
// surface events however the interaction mode requires. The loop is designed
// to never terminate on its own: parse failures, unknown tools, and tool
// faults all become warnings and the conversation continues.
//
// The terminal subpackage (agent/terminal) implements the interactive CLI
// front end.
package agent
