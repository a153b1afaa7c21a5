/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package machine provides the session controller for a vending
// machine.
//
// The controller is specification-driven.  A Spec maps each State to
// a Node, and a Node holds an ordered list of Branches.  Each Branch
// has a Pattern that is matched against one line of (normalized)
// input, an optional Action, and the State to move to.  The first
// Branch whose Pattern matches is taken.  If no Branch matches, the
// Node's Otherwise (if any) says where to go, and the input is
// rejected with an *InvalidInput.
//
// A Pattern is either a literal word ("buy"), a variable ("?n") that
// binds a non-negative decimal integer, or empty, which matches
// anything.
//
// Actions do not perform IO.  An Action returns an Execution that
// holds text for the operator and zero or more Events.  The caller
// (see package sio) is responsible for displaying the text and for
// doing something with the Events.
//
// To use this package, get a Spec (usually VendingSpec()), make a
// Machine with New(), and then call Step() for each line of input.
// Prompt() gives the text to show before reading the next line.
//
// A Machine is not safe for concurrent use.
package machine
