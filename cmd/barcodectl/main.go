// Command barcodectl runs the barcode lookup locally against the configured provider.
package main

func main() {
	Execute()
}
