// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses platform and kernel definitions and translates them
// into the format-agnostic model.
//
// A file may hold at most one platform block and any number of kernels:
//
//	platform "cc_light" {
//	  cycle_time = 20
//	  qubits     = 7
//	  resources  = { qubit = {} }
//
//	  instruction "cz" {
//	    duration      = 40
//	    operand_modes = ["Z", "Z"]
//	  }
//	}
//
//	kernel "main" {
//	  gate "cz" { qubits = [0, 1] }
//	  barrier {}
//	  if {
//	    condition = [0]
//	    gate "x" { qubits = [1] }
//	    else { gate "y" { qubits = [1] } }
//	  }
//	}
//
// Statements keep their source order.
package hcl
