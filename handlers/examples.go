package handlers

const rawExample = `function transfer(address,uint256)
testWithoutType(address,uint256)
function transferFrom(address,address,uint256)
event Transfer(address,address,uint256)
error InsufficientBalance(address)`

const abiExample = `[{"constant":false,"inputs":[{"name":"_from","type":"address"},{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"},{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"},{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Transfer","type":"event"},{"inputs":[{"name":"who","type":"address"}],"name":"InsufficientBalance","type":"error"}]`

var importExamples = map[string]string{
	"raw": rawExample,
	"abi": abiExample,
}
