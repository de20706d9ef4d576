// Package sim simulates the polled I2C master controller and a two-block
// 128-byte-page EEPROM at register level.
//
// A Device implements iic.Bus, so it can stand in for the hardware register
// window anywhere a bus is accepted:
//
//	dev := sim.New(sim.WithWriteCycle(5))
//	ctrl := iic.NewController(dev, iic.Poller{MaxAttempts: 1000})
//	ctrl.Init(iic.DefaultPrescale)
//
//	_ = ctrl.WriteByte(ctx, iic.Block0, 0x0100, 0x5A)
//	fmt.Printf("%02X\n", dev.Peek(iic.Block0, 0x0100)) // 5A
//
// The EEPROM model buffers page data until STOP, wraps sequential writes
// inside the addressed page, refuses its slave address for WriteCycle
// attempts after every commit, and logs each committed write and completed
// read as a Transaction.
package sim
