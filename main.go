/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/qurancms/recitation-api/cmd"

// @title           Recitation API
// @version         1.0.0
// @description     Staff API for ingesting Quran recitation audio tracks and publishing per-asset manifests
// @contact.name    API Support
// @contact.email   support@example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Staff JWT as "Bearer <token>"
func main() {
	cmd.Execute()
}
