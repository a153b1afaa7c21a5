// Package vend provides a specification-driven vending-machine
// controller.
//
// The controller is in package 'machine', the inventory in 'store',
// and the recipe catalog in 'catalog'.  Package 'sio' couples a
// machine to a console, a WebSocket, and event sinks such as the
// bbolt 'journal' and MQTT.  Command-line tools are in `cmd`.
package vend
