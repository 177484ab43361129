/*
Package domain contains the state machine model shared by the parser and the diagram builder.

A model is produced once per DSL block by the parser, read once by the diagram builder and then
discarded. This package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - StateMachineDef: the whole machine (name, initial state, source groups).
  - FromState: every outgoing transition declared for one source state.
  - Transition: one input, its destination and an optional output action.
*/
package domain
