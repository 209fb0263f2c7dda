package evm

// licenseABI covers the read-only subset of the License contract used here.
const licenseABI = `[
  {
    "type": "function",
    "name": "getAccount",
    "stateMutability": "view",
    "inputs": [{"name": "licensee", "type": "address"}],
    "outputs": [{
      "name": "",
      "type": "tuple",
      "components": [
        {"name": "data", "type": "bytes"},
        {"name": "usable", "type": "bool"}
      ]
    }]
  },
  {
    "type": "function",
    "name": "getLicense",
    "stateMutability": "view",
    "inputs": [{"name": "licenseHash", "type": "bytes32"}],
    "outputs": [{"name": "", "type": "string"}]
  },
  {
    "type": "function",
    "name": "getPackedData",
    "stateMutability": "pure",
    "inputs": [
      {"name": "submissionDate", "type": "uint256"},
      {"name": "approvalDate", "type": "uint256"},
      {"name": "expirationDate", "type": "uint256"},
      {"name": "licenseFee", "type": "uint256"},
      {"name": "reportingFrequency", "type": "uint256"},
      {"name": "reportingGracePeriod", "type": "uint256"},
      {"name": "royaltyGracePeriod", "type": "uint256"},
      {"name": "untimelyReports", "type": "uint256"},
      {"name": "untimelyRoyaltyPayments", "type": "uint256"},
      {"name": "extraData", "type": "uint256"}
    ],
    "outputs": [
      {"name": "firstPackedData", "type": "uint256"},
      {"name": "secondPackedData", "type": "uint256"}
    ]
  }
]`

const (
	methodGetAccount    = "getAccount"
	methodGetLicense    = "getLicense"
	methodGetPackedData = "getPackedData"
)
