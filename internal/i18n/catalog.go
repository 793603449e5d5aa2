package i18n

// polish maps message keys to their Polish text. Keys missing here are shown
// as is, which is also how English is rendered.
var polish = map[string]string{
	"internal server error":  "Wystąpił błąd serwera.",
	"invalid input":          "Nieprawidłowe dane.",
	"invalid request body":   "Nieprawidłowa treść żądania.",
	"this field is required": "To pole jest wymagane.",

	// auth
	"authentication credentials were not provided":        "Nie podano danych uwierzytelniających.",
	"token is invalid or expired":                          "Token jest nieprawidłowy lub wygasł.",
	"you do not have permission to perform this action":   "Nie masz uprawnień do wykonania tej akcji.",
	"please provide both email and password":              "Podaj email i hasło.",
	"invalid credentials":                                  "Nieprawidłowe dane logowania.",
	"user not found":                                       "Użytkownik nie został znaleziony.",
	"a user with this email already exists":               "Użytkownik z tym adresem email już istnieje.",
	"enter a valid email address":                          "Podaj prawidłowy adres email.",
	"password must be at least %d characters":             "Hasło musi mieć co najmniej %d znaków.",
	"passwords do not match":                               "Hasła nie są identyczne.",
	"the selected company does not exist or is inactive":  "Wybrana firma nie istnieje lub jest nieaktywna.",
	"invalid access code for this company":                "Nieprawidłowy kod dostępu dla tej firmy.",
	"vendor account created successfully":                  "Konto sprzedawcy zostało utworzone.",
	"invalid password reset token":                         "Nieprawidłowy token resetowania hasła.",
	"this token has already been used":                     "Ten token został już wykorzystany.",
	"token has expired, request a new password reset link": "Token wygasł. Poproś o nowy link do resetowania hasła.",
	"if an account with this email exists, we have sent a password reset link": "Jeśli konto z tym adresem email istnieje, wysłaliśmy link do resetowania hasła.",
	"password changed successfully, you can now log in":                          "Hasło zostało pomyślnie zmienione. Możesz się teraz zalogować.",

	// profile and addresses
	"phone number must contain 9 to 15 digits and only digits, spaces, dashes or +": "Numer telefonu musi zawierać od 9 do 15 cyfr i może zawierać tylko cyfry, spacje, myślniki lub +.",
	"address not found or does not belong to you": "Adres nie został znaleziony lub nie należy do Ciebie.",
	"recipient name must be at least %d characters": "Imię i nazwisko odbiorcy musi mieć co najmniej %d znaki.",
	"street must be at least %d characters":          "Adres ulicy musi mieć co najmniej %d znaki.",
	"city must be at least %d characters":            "Nazwa miasta musi mieć co najmniej %d znaki.",
	"postal code must be in XX-XXX format":           "Kod pocztowy musi być w formacie XX-XXX.",
	"address deleted":                                "Adres został usunięty.",
	"address set as default":                         "Adres został ustawiony jako domyślny.",

	// catalog and cart
	"product not found": "Produkt nie został znaleziony.",
	"you must choose a format (paperback or ebook) for this product": "Musisz wybrać format: paperback (książka papierowa) lub ebook (e-book).",
	"this product is not available as %s":                            "Ten produkt nie jest dostępny w formacie %s.",
	"guest cart not found":                                           "Koszyk gościa nie został znaleziony.",
	"item not found in cart":                                         "Produkt nie został znaleziony w koszyku.",
	"quantity must be at least 1":                                    "Ilość musi wynosić co najmniej 1.",
	"only %d available":                                              "Dostępnych tylko %d sztuk.",
	"cannot add %d more, only %d available":                          "Nie można dodać %d więcej. Dostępnych tylko %d sztuk.",
	"item removed from cart":                                         "Produkt został usunięty z koszyka.",
	"cart cleared":                                                   "Koszyk został wyczyszczony.",
	"cart is already empty":                                          "Koszyk jest już pusty.",

	// orders and payments
	"order not found": "Zamówienie nie zostało znalezione.",
	"cart is empty":   "Koszyk jest pusty.",
	"cart not found, add products to the cart before checkout": "Nie znaleziono koszyka. Dodaj produkty do koszyka przed złożeniem zamówienia.",
	"not enough stock for \"%s\", available: %d":               "Niewystarczająca ilość produktu \"%s\". Dostępne: %d.",
	"first name must be at least %d characters":                "Imię musi mieć co najmniej %d znaki.",
	"last name must be at least %d characters":                 "Nazwisko musi mieć co najmniej %d znaki.",
	"order placed successfully":                                "Zamówienie zostało złożone pomyślnie.",
	"payment not found":                                        "Płatność nie została znaleziona.",
	"missing Stripe-Signature header":                          "Brak nagłówka Stripe-Signature.",
	"invalid payload":                                          "Nieprawidłowe dane żądania.",
	"invalid signature":                                        "Nieprawidłowy podpis.",

	// vendor panel
	"user is not assigned to any vendor company":  "Użytkownik nie jest przypisany do żadnej firmy.",
	"you cannot edit the following fields: %s":    "Nie możesz edytować następujących pól: %s",
	"page count must be a positive number":        "Liczba stron musi być liczbą dodatnią.",
	"publication year must be between %s and %s":  "Rok wydania musi być pomiędzy %s a %s.",
	"no products for this vendor company":         "Brak produktów dla tej firmy.",
}
