// @title           GoTrabahu API
// @version         1.0
// @description     Job board API: employers post jobs, workers apply with
// @description     tokens or an unlimited subscription.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "github.com/adam-ctrlc/gotrabahu/internal/app"

func main() {
	app.Run()
}
