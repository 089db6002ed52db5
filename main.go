package main

import "github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/app"

func main() {
	app.Run()
}
