package vendor

// InputsFromSnapshot exposes inputsFromSnapshot to the external test package.
var InputsFromSnapshot = inputsFromSnapshot
