// @title        Banque Registration API
// @version      1.0
// @description  Client registration, personal and corporate accounts, employee operations.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "github.com/banque/registration-system/internal/cli"

func main() {
	cli.Execute()
}
