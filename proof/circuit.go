// Package proof produces zero-knowledge proofs that a fee-on-transfer
// transition was applied consistently: the sender paid the gross amount, the
// recipient received the net, and exactly the fee left total supply.
//
// Amounts must fit the BN254 scalar field (about 254 bits); ledgers whose
// balances approach 2^254 cannot be proven with this circuit.
package proof

import "github.com/consensys/gnark/frontend"

// TransferCircuit constrains one transfer between two distinct accounts.
// The balances and supply around the transition are public; the amount and
// fee stay private.
type TransferCircuit struct {
	PreSender     frontend.Variable `gnark:",public"`
	PostSender    frontend.Variable `gnark:",public"`
	PreRecipient  frontend.Variable `gnark:",public"`
	PostRecipient frontend.Variable `gnark:",public"`
	PreSupply     frontend.Variable `gnark:",public"`
	PostSupply    frontend.Variable `gnark:",public"`

	Amount frontend.Variable
	Fee    frontend.Variable
}

// Define implements frontend.Circuit.
func (c *TransferCircuit) Define(api frontend.API) error {
	net := api.Sub(c.Amount, c.Fee)

	api.AssertIsEqual(c.PostSender, api.Sub(c.PreSender, c.Amount))
	api.AssertIsEqual(c.PostRecipient, api.Add(c.PreRecipient, net))
	api.AssertIsEqual(c.PostSupply, api.Sub(c.PreSupply, c.Fee))

	// Range facts that make the arithmetic above meaningful over a prime
	// field: the fee never exceeds the amount, and the sender could afford
	// the gross debit.
	api.AssertIsLessOrEqual(c.Fee, c.Amount)
	api.AssertIsLessOrEqual(c.Amount, c.PreSender)
	return nil
}
