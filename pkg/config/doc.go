// Package config loads contracts from YAML and JSON files and holds the CLI
// configuration.
//
// A contract file holds one contract per YAML document:
//
//	description: Should mark client as fraud
//	request:
//	  method: PUT
//	  url: /fraudcheck
//	  body:
//	    clientId: "1234567890"
//	    loanAmount: 99999
//	  matchers:
//	    body:
//	      - path: $.clientId
//	        type: by_regex
//	        value: "[0-9]{10}"
//	response:
//	  status: 200
//	  body:
//	    fraudCheckStatus: FRAUD
//	  matchers:
//	    headers:
//	      - key: Content-Type
//	        regex: application/json.*
//
// Every document is checked against an embedded JSON Schema before it is
// converted with contract.Make and checked with contract.Assert. Request
// side matchers become consumer-side patterns, response side matchers
// producer-side patterns, as in the contract DSL.
package config
