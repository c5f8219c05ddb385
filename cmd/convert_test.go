package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestConverter(t *testing.T) {
	testCases := []struct {
		Name string
		JSON string
		Doc  []string
	}{
		{
			Name: "SCALAR",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "SCALAR",
			          "name": "Time",
			          "description": null,
			          "fields": null,
			          "interfaces": null,
			          "possibleTypes": null,
			          "enumValues": null,
			          "inputFields": null,
			          "ofType": null
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"```gql:scalar",
				"Time",
				"```",
				"",
				"",
			},
		},
		{
			Name: "SCALAR with Description",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "SCALAR",
			          "name": "Time",
			          "description": "An RFC 3339 timestamp."
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"An RFC 3339 timestamp.",
				"",
				"```gql:scalar",
				"Time",
				"```",
				"",
				"",
			},
		},
		{
			Name: "OBJECT",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "OBJECT",
			          "name": "Test",
			          "description": null,
			          "fields": [
									{
										"name": "a",
										"description": null,
										"isDeprecated": false,
										"deprecationReason": null,
										"args": [
											{
												"name": "b",
												"description": null,
												"type": {
													"kind": "SCALAR",
													"name": "Int",
													"ofType": null
												}
											}
										],
										"type": {
											"kind": "SCALAR",
											"name": "String",
											"ofType": null
										}
									},
									{
										"name": "b",
										"description": null,
										"isDeprecated": false,
										"deprecationReason": null,
										"args": [],
										"type": {
											"kind": "LIST",
											"name": null,
											"ofType": {
												"name": "Int",
												"kind": "SCALAR"
											}
										}
									},
									{
										"name": "c",
										"description": null,
										"isDeprecated": false,
										"deprecationReason": null,
										"args": [
											{
												"name": "d",
												"description": null,
												"defaultValue": "0",
												"type": {
													"kind": "SCALAR",
													"name": "Int",
													"ofType": null
												}
											}
										],
										"type": {
											"kind": "NON_NULL",
											"name": null,
											"ofType": {
												"name": "Int",
												"kind": "SCALAR"
											}
										}
									}
								],
			          "interfaces": [
									{
										"name": "A"
									},
									{
										"name": "B"
									}
								],
			          "possibleTypes": null,
			          "enumValues": null,
			          "inputFields": null,
			          "ofType": null
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"```gql:type",
				"Test implements A & B",
				"```",
				"",
				"```gql:type-field",
				"a(b: Int): String",
				"```",
				"",
				"```gql:type-field",
				"b: [Int]",
				"```",
				"",
				"```gql:type-field",
				"c(d: Int = 0): Int!",
				"```",
				"",
				"",
			},
		},
		{
			Name: "OBJECT with Descriptions",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "OBJECT",
			          "name": "Test",
			          "description": "Test is a thing.",
			          "fields": [
									{
										"name": "a",
										"description": "a is a field.",
										"isDeprecated": false,
										"deprecationReason": null,
										"args": [],
										"type": {
											"kind": "SCALAR",
											"name": "String",
											"ofType": null
										}
									}
								],
			          "interfaces": null,
			          "possibleTypes": null,
			          "enumValues": null,
			          "inputFields": null,
			          "ofType": null
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"Test is a thing.",
				"",
				"```gql:type",
				"Test",
				"```",
				"",
				"a is a field.",
				"",
				"```gql:type-field",
				"a: String",
				"```",
				"",
				"",
			},
		},
		{
			Name: "Deprecations",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "OBJECT",
			          "name": "Test",
			          "description": null,
			          "fields": [
									{
										"name": "old",
										"description": null,
										"isDeprecated": true,
										"deprecationReason": "Use new.",
										"args": [],
										"type": {
											"kind": "SCALAR",
											"name": "String",
											"ofType": null
										}
									}
								],
			          "interfaces": null
			        },
			        {
			          "kind": "ENUM",
			          "name": "State",
			          "description": null,
			          "enumValues": [
									{
										"name": "ON",
										"description": null,
										"isDeprecated": false,
										"deprecationReason": null
									},
									{
										"name": "OFF",
										"description": null,
										"isDeprecated": true,
										"deprecationReason": null
									}
								]
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"```gql:type",
				"Test",
				"```",
				"",
				"```gql:type-field",
				"old: String @deprecated(reason: \"Use new.\")",
				"```",
				"",
				"```gql:enum",
				"State",
				"```",
				"",
				"```gql:enum-value",
				"ON",
				"```",
				"",
				"```gql:enum-value",
				"OFF @deprecated",
				"```",
				"",
				"",
			},
		},
		{
			Name: "INTERFACE",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "INTERFACE",
			          "name": "Test",
			          "description": null,
								"fields": [
									{
										"name": "a",
										"description": null,
										"isDeprecated": false,
										"deprecationReason": null,
										"args": [
											{
												"name": "b",
												"description": null,
												"type": {
													"kind": "SCALAR",
													"name": "Int",
													"ofType": null
												}
											}
										],
										"type": {
											"kind": "SCALAR",
											"name": "String",
											"ofType": null
										}
									}
								],
			          "interfaces": null,
			          "possibleTypes": null,
			          "enumValues": null,
			          "inputFields": null,
			          "ofType": null
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"```gql:interface",
				"Test",
				"```",
				"",
				"```gql:interface-field",
				"a(b: Int): String",
				"```",
				"",
				"",
			},
		},
		{
			Name: "UNION",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "UNION",
			          "name": "Test",
			          "description": null,
								"fields": [],
			          "interfaces": null,
			          "possibleTypes": [
									{
										"kind": "OBJECT",
										"name": "A"
									},
									{
										"kind": "OBJECT",
										"name": "B"
									},
									{
										"kind": "OBJECT",
										"name": "C"
									}
								],
			          "enumValues": null,
			          "inputFields": null,
			          "ofType": null
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"```gql:union",
				"Test = A | B | C",
				"```",
				"",
				"",
			},
		},
		{
			Name: "INPUT",
			JSON: `
			{
			    "__schema": {
			      "directives": [],
			      "types": [
			        {
			          "kind": "INPUT_OBJECT",
			          "name": "Test",
			          "description": null,
								"fields": [],
			          "interfaces": null,
			          "possibleTypes": null,
			          "enumValues": null,
			          "inputFields": [
									{
										"name": "a",
										"description": null,
										"defaultValue": null,
										"type": {
											"kind": "SCALAR",
											"name": "String",
											"ofType": null
										}
									},
									{
										"name": "b",
										"description": null,
										"defaultValue": null,
										"type": {
											"kind": "LIST",
											"ofType": {
												"name": "Int",
												"kind": "SCALAR"
											}
										}
									},
									{
										"name": "d",
										"description": null,
										"defaultValue": "0",
										"type": {
											"kind": "SCALAR",
											"name": "Int",
											"ofType": null
										}
									}
								],
			          "ofType": null
			        }
			      ]
			    }
			}
			`,
			Doc: []string{
				"```gql:input",
				"Test",
				"```",
				"",
				"```gql:input-field",
				"a: String",
				"```",
				"",
				"```gql:input-field",
				"b: [Int]",
				"```",
				"",
				"```gql:input-field",
				"d: Int = 0",
				"```",
				"",
				"",
			},
		},
		{
			Name: "DIRECTIVE",
			JSON: `
			{
				"__schema": {
					"directives": [
						{
							"name": "s",
							"locations": ["FIELD_DEFINITION"],
							"args": [
								{
									"name": "if",
									"type": {
										"kind": "NON_NULL",
										"name": null,
										"ofType": {
											"kind": "SCALAR",
											"name": "Boolean"
										}
									}
								}
							]
						}
					],
					"types": []
				}
			}
			`,
			Doc: []string{
				"```gql:directive",
				"@s(if: Boolean!) on FIELD_DEFINITION",
				"```",
				"",
				"",
			},
		},
		{
			Name: "Ignore Builtins",
			JSON: `
			{
				"__schema": {
					"directives": [],
					"types": [
						{
							"kind": "SCALAR",
							"name": "String"
						},
						{
							"kind": "SCALAR",
							"name": "Custom"
						},
						{
							"kind": "OBJECT",
							"name": "__Type"
						}
					]
				}
			}
			`,
			Doc: []string{
				"```gql:scalar",
				"Custom",
				"```",
				"",
				"",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			rc := noopCloser{strings.NewReader(testCase.JSON)}
			c, err := newConverter(rc)
			if err != nil {
				subT.Errorf("unexpected error when initing converter: %s", err)
				return
			}

			b, err := io.ReadAll(c)
			if err != nil {
				subT.Errorf("unexpected error when converting: %s", err)
				return
			}

			ex := []byte(strings.Join(testCase.Doc, "\n"))
			if !bytes.Equal(b, ex) {
				subT.Logf("\nexpected: %s\ngot: %s", string(ex), string(b))
				subT.Fail()
				return
			}
		})
	}
}
