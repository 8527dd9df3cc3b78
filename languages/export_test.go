package languages

var CompiledQuery = compiledQuery
