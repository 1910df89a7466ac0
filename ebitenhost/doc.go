// Package ebitenhost runs a sprig UI inside an Ebitengine game loop.
//
// Host implements ebiten.Game: every tick it polls mouse, touch, wheel and
// keyboard state into the sprig.Context, runs ProcessFrame with the
// application's build function, and on Draw renders the resulting draw data
// with Renderer. Screenshots requested through the context (or a test
// script) are written as PNG files after the frame is drawn.
//
// Configuration is read from SPRIG_* environment variables:
//
//	cfg, err := ebitenhost.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	host, err := ebitenhost.New(cfg, func(c *sprig.Context) {
//		// declare nodes
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := host.Run(); err != nil {
//		log.Fatal(err)
//	}
package ebitenhost
