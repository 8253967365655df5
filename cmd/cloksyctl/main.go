// Command cloksyctl is the operator CLI for Cloksy: it applies migrations,
// prints the weekly summary and writes exports straight from the database.
package main

func main() {
	execute()
}
