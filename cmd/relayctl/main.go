package main

import (
	"flag"
	"log"

	"github.com/nergy-se/agilerun/pkg/modbusclient"
)

func main() {
	address := flag.String("addr", "", "tcp modbus address")
	slaveID := flag.Int("slave", 1, "modbus slave id")
	coil := flag.Int("coil", 0, "relay coil")
	value := flag.String("value", "", "on or off. reads the coil when empty")
	flag.Parse()

	if *address == "" {
		log.Fatal("-addr is required")
	}

	client := modbusclient.Dial(*address, byte(*slaveID))
	defer client.Close()

	switch *value {
	case "":
		on, err := client.ReadCoil(uint16(*coil))
		if err != nil {
			log.Println("error was: ", err)
			return
		}
		log.Println("coil is on: ", on)
	case "on", "off":
		n, err := client.WriteSingleCoil(uint16(*coil), modbusclient.CoilValue(*value == "on"))
		if err != nil {
			log.Println("error was: ", err)
			return
		}
		log.Println("wrote value: ", n)
	default:
		log.Fatalf("unknown value %q, want on or off", *value)
	}
}
