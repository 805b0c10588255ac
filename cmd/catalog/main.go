// Package main is the entry point for the product catalog service.
//
// @title Product Catalog API
// @version 1.0
// @description Product catalog with filtered search and CSV bulk upload.
//
// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import "github.com/Neeraj921721/product-catalog-backend/cmd/catalog/cmd"

func main() {
	cmd.Execute()
}
