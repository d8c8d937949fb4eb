// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

// Board describes a commonly benchmarked microcontroller board.
type Board struct {
	Name        string
	Description string
}

// standardBoards is the board lineup the benchmark READMEs have always
// used, in report order.
var standardBoards = []Board{
	{Name: "nano", Description: "Arduino Nano, 16 MHz ATmega328P"},
	{Name: "micro", Description: "SparkFun Pro Micro, 16 MHz ATmega32U4"},
	{Name: "stm32", Description: "STM32 Blue Pill, 72 MHz ARM Cortex-M3"},
	{Name: "esp8266", Description: "NodeMCU 1.0, 80 MHz ESP8266"},
	{Name: "esp32", Description: "ESP32 Dev Board, 240 MHz Tensilica LX6"},
	{Name: "teensy32", Description: "Teensy 3.2, 96 MHz ARM Cortex-M4"},
}

// StandardBoards returns the default board lineup in report order.
func StandardBoards() []Board {
	return append([]Board(nil), standardBoards...)
}

// StandardPlatforms returns the default lineup as platforms whose raw
// results live in "<name>.txt" and whose slot is "<name>_results".
func StandardPlatforms() []Platform {
	ps := make([]Platform, len(standardBoards))
	for i, b := range standardBoards {
		ps[i] = Platform{
			Name:   b.Name,
			Source: b.Name + ".txt",
			Slot:   b.Name + "_results",
		}
	}
	return ps
}

// LookupBoard returns the standard board with the given name.
func LookupBoard(name string) (Board, bool) {
	for _, b := range standardBoards {
		if b.Name == name {
			return b, true
		}
	}
	return Board{}, false
}
